package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MetricsMap holds the raw numbers that produced a score, persisted as JSONB
// next to the score itself so every run stays auditable.
type MetricsMap map[string]float64

func (m MetricsMap) Value() (driver.Value, error) {
	if m == nil {
		m = MetricsMap{}
	}
	return json.Marshal(m)
}

func (m *MetricsMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into MetricsMap", value)
	}
}

// ScoreRecord is one computed Fibbo Score for an entity on a given date.
// The (project_id, entity_id, score_date) key makes same-day re-runs
// overwrite rather than append.
type ScoreRecord struct {
	ProjectID       string     `gorm:"column:project_id;primaryKey" json:"project_id"`
	EntityID        string     `gorm:"column:entity_id;primaryKey" json:"entity_id"`
	ScoreDate       string     `gorm:"column:score_date;primaryKey" json:"score_date"`
	TotalScore      float64    `gorm:"column:total_score" json:"total_score"`
	Presence        float64    `gorm:"column:presence_score" json:"presence"`
	Engagement      float64    `gorm:"column:engagement_score" json:"engagement"`
	Content         float64    `gorm:"column:content_score" json:"content"`
	Competitiveness float64    `gorm:"column:competitiveness_score" json:"competitiveness"`
	Metrics         MetricsMap `gorm:"column:metrics;type:jsonb" json:"metrics"`
}

func (ScoreRecord) TableName() string {
	return "fibbo_scores"
}
