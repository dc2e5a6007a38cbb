package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/creatorstation/fibboscore/internal/models"
)

// EntityStore reads the tracked-account roster from Supabase.
type EntityStore struct {
	db *gorm.DB
}

func NewEntityStore(db *gorm.DB) *EntityStore {
	return &EntityStore{db: db}
}

// ListByProject returns every entity tracked by a project, brand first so
// run output stays in a stable order.
func (s *EntityStore) ListByProject(ctx context.Context, projectID string) ([]models.Entity, error) {
	var entities []models.Entity

	result := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("role asc, id asc").
		Find(&entities)

	if result.Error != nil {
		return nil, fmt.Errorf("listing entities for project %s: %w", projectID, result.Error)
	}

	return entities, nil
}

// ListProjectIDs returns the ids of all projects that track at least one
// entity, used by the nightly sweep.
func (s *EntityStore) ListProjectIDs(ctx context.Context) ([]string, error) {
	var ids []string

	result := s.db.WithContext(ctx).
		Model(&models.Entity{}).
		Distinct("project_id").
		Order("project_id asc").
		Pluck("project_id", &ids)

	if result.Error != nil {
		return nil, fmt.Errorf("listing project ids: %w", result.Error)
	}

	return ids, nil
}
