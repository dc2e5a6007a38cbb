package scoring

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func MountController(router fiber.Router, engine *Engine) {
	router.Post("/run", func(c *fiber.Ctx) error {
		return RunScoring(c, engine)
	})
}

// RunScoring computes and persists the scores for one project, returning
// the records. Scoring is cheap, so the request is handled synchronously.
func RunScoring(c *fiber.Ctx, engine *Engine) error {
	var body RunScoringBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logrus.Infof("Scoring project %s", body.ProjectID)

	records, err := engine.ComputeScores(c.UserContext(), body.ProjectID, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"project_id": body.ProjectID,
		"scored":     len(records),
		"scores":     records,
	})
}
