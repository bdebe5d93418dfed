package worker

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ImportJob is the message shape on the import subject. A malformed job is
// alerted and skipped so one bad message cannot wedge the queue.
type ImportJob struct {
	FileURL           string `json:"fileUrl" validate:"required,url"`
	LocationVendorIDs []uint `json:"locationVendorIds" validate:"required,min=1"`
}

// ParseJob decodes and validates a job message.
func ParseJob(data []byte) (*ImportJob, error) {
	var job ImportJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}

	if err := validate.Struct(&job); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}

	return &job, nil
}
