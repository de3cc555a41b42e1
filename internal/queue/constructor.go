package queue

import (
	"github.com/maheshrc27/repostflow/internal/service"
)

type Queue struct {
	ps service.PublishService
}

func NewQueue(ps service.PublishService) *Queue {
	return &Queue{ps: ps}
}

const TaskTypeProcessQueue = "repost:process_queue"

type ProcessQueuePayload struct {
	// TriggerPostID is the post whose enqueue kicked this run. The run
	// drains the whole queue regardless; the id is for logging.
	TriggerPostID string `json:"trigger_post_id"`
}
