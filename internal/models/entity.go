package models

// Entity roles. Only brand and competitor participate in competitive
// benchmarking; influencer and inspiration accounts are scored on their own.
const (
	RoleBrand       = "brand"
	RoleCompetitor  = "competitor"
	RoleInfluencer  = "influencer"
	RoleInspiration = "inspiration"
)

// Entity represents one row of the project_entities table: a social account
// tracked by a project.
type Entity struct {
	ID        string `gorm:"primaryKey"`
	ProjectID string `gorm:"column:project_id"`
	Handle    string `gorm:"column:handle"`
	Role      string `gorm:"column:role"`
}

func (Entity) TableName() string {
	return "project_entities"
}
