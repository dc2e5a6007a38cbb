package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/creatorstation/fibboscore/internal/models"
	"github.com/creatorstation/fibboscore/internal/store"
)

// Pillar caps. Every pillar is clamped to its own cap before summation, so
// the total always lands in [0, 100].
const (
	pillarMax = 25.0
	totalMax  = 100.0
)

// EntitySource supplies a project's tracked-account roster.
type EntitySource interface {
	ListByProject(ctx context.Context, projectID string) ([]models.Entity, error)
}

// TelemetrySource supplies the scraped posts, snapshots and comments for a
// set of entities.
type TelemetrySource interface {
	FetchProject(ctx context.Context, entityIDs []string) (*store.TelemetrySet, error)
}

// ScoreSink persists a run's records as one batch.
type ScoreSink interface {
	UpsertBatch(ctx context.Context, records []models.ScoreRecord) error
}

// Engine computes Fibbo Scores for one project per run. The computation is
// pure and in-memory; the sources and sink are the only I/O boundaries.
type Engine struct {
	entities  EntitySource
	telemetry TelemetrySource
	scores    ScoreSink
	log       *logrus.Logger
}

func NewEngine(entities EntitySource, telemetry TelemetrySource, scores ScoreSink, log *logrus.Logger) *Engine {
	return &Engine{
		entities:  entities,
		telemetry: telemetry,
		scores:    scores,
		log:       log,
	}
}

// ComputeScores scores every entity of a project as of the given instant
// and upserts one record per entity, keyed by (project, entity, date).
// Re-running on the same day with unchanged data overwrites the previous
// records with identical ones. A project without entities is not an error;
// it just has nothing to score.
func (e *Engine) ComputeScores(ctx context.Context, projectID string, asOf time.Time) ([]models.ScoreRecord, error) {
	runID := uuid.NewString()

	entities, err := e.entities.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching entities: %w", err)
	}
	if len(entities) == 0 {
		e.log.WithFields(logrus.Fields{"run_id": runID, "project_id": projectID}).
			Info("no entities to score")
		return []models.ScoreRecord{}, nil
	}

	entityIDs := make([]string, len(entities))
	for i, ent := range entities {
		entityIDs[i] = ent.ID
	}

	telemetry, err := e.telemetry.FetchProject(ctx, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching telemetry: %w", err)
	}

	windows := buildWindows(asOf, entities, telemetry)
	peers := buildPeerAggregate(windows, entities)

	// Entities are independent once windows are materialized; score them in
	// parallel, each into its own slot to keep output order deterministic.
	records := make([]models.ScoreRecord, len(entities))
	g, _ := errgroup.WithContext(ctx)
	for i, ent := range entities {
		g.Go(func() error {
			records[i] = assembleScore(projectID, asOf, windows[ent.ID], peers)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := e.scores.UpsertBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("persisting scores: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"run_id":     runID,
		"project_id": projectID,
		"entities":   len(records),
		"score_date": scoreDate(asOf),
	}).Info("scoring run completed")

	return records, nil
}

// assembleScore runs the four pillar scorers for one entity and merges the
// results into a record with the audit snapshot attached.
func assembleScore(projectID string, asOf time.Time, w *EntityWindows, peers *peerAggregate) models.ScoreRecord {
	presence, presenceMetrics := scorePresence(asOf, w)
	engagement, engagementMetrics := scoreEngagement(w)
	content, contentMetrics := scoreContent(w)
	competitiveness, competitiveMetrics := scoreCompetitiveness(w, peers)

	presence = clamp(presence, 0, pillarMax)
	engagement = clamp(engagement, 0, pillarMax)
	content = clamp(content, 0, pillarMax)
	competitiveness = clamp(competitiveness, 0, pillarMax)

	metrics := models.MetricsMap{}
	for _, part := range []models.MetricsMap{presenceMetrics, engagementMetrics, contentMetrics, competitiveMetrics} {
		for k, v := range part {
			metrics[k] = v
		}
	}

	return models.ScoreRecord{
		ProjectID:       projectID,
		EntityID:        w.Entity.ID,
		ScoreDate:       scoreDate(asOf),
		TotalScore:      clamp(round2(presence+engagement+content+competitiveness), 0, totalMax),
		Presence:        round2(presence),
		Engagement:      round2(engagement),
		Content:         round2(content),
		Competitiveness: round2(competitiveness),
		Metrics:         metrics,
	}
}

func scoreDate(asOf time.Time) string {
	return asOf.UTC().Format("2006-01-02")
}
