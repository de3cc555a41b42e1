package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/repostflow/internal/service"
	"github.com/maheshrc27/repostflow/internal/transfer"
)

type GeneralHandler struct {
	s service.GeneralService
}

func NewGeneralHandler(s service.GeneralService) *GeneralHandler {
	return &GeneralHandler{s: s}
}

func (h *GeneralHandler) GetCredentials(c *fiber.Ctx) error {
	creds, err := h.s.GetCredentials(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get credentials",
		})
	}
	return c.JSON(creds)
}

func (h *GeneralHandler) SetCredentials(c *fiber.Ctx) error {
	var cu transfer.CredentialsUpdate
	if err := c.BodyParser(&cu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdateCredentials(c.Context(), &cu); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update credentials",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *GeneralHandler) SetAccount(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.SetAccount(c.Context(), req.Username, req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *GeneralHandler) GetGeneralConfig(c *fiber.Ctx) error {
	cfg, err := h.s.GetGeneralConfig(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get general config",
		})
	}
	return c.JSON(cfg)
}

func (h *GeneralHandler) SetGeneralConfig(c *fiber.Ctx) error {
	var gu transfer.GeneralConfigUpdate
	if err := c.BodyParser(&gu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdateGeneralConfig(c.Context(), &gu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update general config",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *GeneralHandler) ListHashtags(c *fiber.Ctx) error {
	hashtags, err := h.s.ListHashtags(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list hashtags",
		})
	}
	return c.JSON(hashtags)
}

func (h *GeneralHandler) AddHashtag(c *fiber.Ctx) error {
	var req transfer.HashtagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.AddHashtag(c.Context(), req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *GeneralHandler) RemoveHashtag(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	if err := h.s.RemoveHashtag(c.Context(), int64(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove hashtag",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
