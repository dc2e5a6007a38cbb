package scoring

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type RunScoringBody struct {
	ProjectID string `json:"project_id"`
}

func (b RunScoringBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.ProjectID, v.Required, is.UUID),
	)
}
