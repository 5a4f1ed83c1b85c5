package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/venues/internal/model"
	"github.com/hibiken/asynq"
)

// TaskVenueLinkCheck is the task type name stored in Redis.
const TaskVenueLinkCheck = "venue:link_check"

// LinkCheckPayload is the JSON payload of a link check task.
type LinkCheckPayload struct {
	VenueID string `json:"venue_id"`
	URL     string `json:"url"`
}

// NewLinkCheckTask builds a low-priority link check for venue.
func NewLinkCheckTask(venue model.Venue) (*asynq.Task, error) {
	payload, err := json.Marshal(LinkCheckPayload{
		VenueID: venue.ID.String(),
		URL:     venue.URL,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskVenueLinkCheck,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
