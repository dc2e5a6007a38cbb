package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorstation/fibboscore/internal/models"
)

// ScoreStore persists computed scores to Supabase.
type ScoreStore struct {
	db *gorm.DB
}

func NewScoreStore(db *gorm.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// UpsertBatch writes all records of a run in one transaction, overwriting
// any record already present for the same (project, entity, date) key. The
// batch either lands whole or not at all.
func (s *ScoreStore) UpsertBatch(ctx context.Context, records []models.ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "project_id"},
				{Name: "entity_id"},
				{Name: "score_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_score",
				"presence_score",
				"engagement_score",
				"content_score",
				"competitiveness_score",
				"metrics",
			}),
		}).Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("upserting %d score records: %w", len(records), err)
	}

	return nil
}
