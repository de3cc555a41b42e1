package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandleProcessQueueTask drains the publish queue. The asynq server runs
// with concurrency 1 so publish attempts are always serialized.
func (q *Queue) HandleProcessQueueTask(ctx context.Context, task *asynq.Task) error {
	var payload ProcessQueuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := q.ps.ProcessQueue(ctx); err != nil {
		// Failed posts stay queued; the error is surfaced for the
		// operator, not retried automatically.
		slog.Error("queue processing finished with failures",
			"trigger_post_id", payload.TriggerPostID, "error", err)
	}

	return nil
}
