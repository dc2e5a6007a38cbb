package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var client = resty.New()

// RunSummary is posted back to the main app after a scoring sweep so
// dashboards can refresh.
type RunSummary struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Projects  int       `json:"projects"`
	Scored    int       `json:"scored"`
	Failed    []string  `json:"failed,omitempty"`
}

func PostRunSummary(webhookURL string, summary RunSummary) error {
	resp, err := client.R().
		SetHeader("User-Agent", "fibboscore-webhook").
		SetBody(summary).
		Post(webhookURL)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("webhook rejected summary: %s, %s", resp.Status(), resp.String())
	}

	return nil
}
