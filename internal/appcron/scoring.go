package appcron

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/fibboscore/internal/scoring"
	"github.com/creatorstation/fibboscore/pkg/notify"
)

// ProjectLister supplies the project ids the nightly sweep walks.
type ProjectLister interface {
	ListProjectIDs(ctx context.Context) ([]string, error)
}

func SetupScoringCron(engine *scoring.Engine, projects ProjectLister) {
	istanbulLoc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		logrus.Fatalf("Failed to load timezone: %v", err)
	}

	c := cron.New(cron.WithLocation(istanbulLoc))

	// Score every project once a night, after the scrapers have finished.
	_, err = c.AddFunc("0 6 * * *", func() {
		runScoringSweep(engine, projects)
	})
	if err != nil {
		logrus.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	logrus.Info("Scoring sweep scheduled to run at 6 AM Istanbul time")
}

func MountController(router fiber.Router, engine *scoring.Engine, projects ProjectLister) {
	router.Post("/run-scoring-sweep", func(c *fiber.Ctx) error {
		go runScoringSweep(engine, projects)
		return c.JSON(fiber.Map{
			"message": "Scoring sweep started",
		})
	})
}

// runScoringSweep scores all projects. A failing project is logged and
// skipped; the sweep carries on, and re-running is safe because scoring is
// idempotent per day.
func runScoringSweep(engine *scoring.Engine, projects ProjectLister) {
	ctx := context.Background()
	asOf := time.Now()

	projectIDs, err := projects.ListProjectIDs(ctx)
	if err != nil {
		logrus.Errorf("Error listing projects: %v", err)
		return
	}

	logrus.Infof("Starting scoring sweep over %d projects", len(projectIDs))

	summary := notify.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: asOf.UTC(),
	}

	for _, projectID := range projectIDs {
		records, err := engine.ComputeScores(ctx, projectID, asOf)
		if err != nil {
			logrus.Errorf("Error scoring project %s: %v", projectID, err)
			summary.Failed = append(summary.Failed, projectID)
			continue
		}
		summary.Projects++
		summary.Scored += len(records)
	}

	logrus.Infof("Scoring sweep completed: %d projects, %d entities scored", summary.Projects, summary.Scored)

	if webhookURL := os.Getenv("SCORE_WEBHOOK_URL"); webhookURL != "" {
		if err := notify.PostRunSummary(webhookURL, summary); err != nil {
			logrus.Warnf("Error posting run summary webhook: %v", err)
		}
	}
}
