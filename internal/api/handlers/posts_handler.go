package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/repostflow/internal/queue"
	"github.com/maheshrc27/repostflow/internal/repository"
	"github.com/maheshrc27/repostflow/internal/service"
	"github.com/maheshrc27/repostflow/internal/transfer"
)

type PostsHandler struct {
	ps          service.PublishService
	fs          service.FetchService
	pr          repository.PostRepository
	AsynqClient *asynq.Client
}

func NewPostsHandler(ps service.PublishService, fs service.FetchService, pr repository.PostRepository, asynqClient *asynq.Client) *PostsHandler {
	return &PostsHandler{ps: ps, fs: fs, pr: pr, AsynqClient: asynqClient}
}

func (h *PostsHandler) NonDeletedFetchedPosts(c *fiber.Ctx) error {
	posts, err := h.pr.ListNonDeleted(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}
	return c.JSON(posts)
}

func (h *PostsHandler) AllFetchedPosts(c *fiber.Ctx) error {
	posts, err := h.pr.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}
	return c.JSON(posts)
}

// DeletePost removes the staged media file and marks the post deleted.
// Repeating the call for an already-deleted post succeeds.
func (h *PostsHandler) DeletePost(c *fiber.Ctx) error {
	postID := c.Query("postId")
	mediaType := c.Query("mediaType")
	if postID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "postId is required",
		})
	}

	if err := h.ps.Delete(c.Context(), postID, mediaType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to delete post",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// QueuePost stages a fetched post and schedules a queue-processing run.
func (h *PostsHandler) QueuePost(c *fiber.Ctx) error {
	var req transfer.QueuePostRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.ps.Enqueue(c.Context(), req.PostID, req.MediaType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := queue.EnqueueProcessQueue(h.AsynqClient, queue.ProcessQueuePayload{TriggerPostID: req.PostID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling queue processing",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// ProcessQueue schedules a queue-processing run without queueing a new post.
// Posts left queued by earlier failed attempts are retried this way.
func (h *PostsHandler) ProcessQueue(c *fiber.Ctx) error {
	err := queue.EnqueueProcessQueue(h.AsynqClient, queue.ProcessQueuePayload{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling queue processing",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// Fetch triggers hashtag discovery on demand.
func (h *PostsHandler) Fetch(c *fiber.Ctx) error {
	var req transfer.FetchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.Hashtag == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "hashtag is required",
		})
	}

	count, err := h.fs.DiscoverAndStore(c.Context(), req.Hashtag, req.Kind)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"fetched": count})
}
