package handler

import (
	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	service service.TagService
}

func NewTagHandler(s service.TagService) *TagHandler {
	return &TagHandler{service: s}
}

// TagRequest carries raw user text; the service canonicalizes both fields.
type TagRequest struct {
	TagText string `json:"tag_text"`
	CatText string `json:"cat_text"`
}

// ApplyTag attaches a tag (and optional category) to a component
// PUT /api/v1/components/:id/tags
func (h *TagHandler) ApplyTag(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	tag, err := h.service.ApplyTag(c.UserContext(), componentID, req.TagText, req.CatText, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Tag applied", "data": tag})
}

// GET /api/v1/components/:id/tags
func (h *TagHandler) GetComponentTags(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}

	tags, err := h.service.ComponentTags(c.UserContext(), componentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// DELETE /api/v1/components/:id/tags/:tagId
func (h *TagHandler) RemoveFromComponent(c *fiber.Ctx) error {
	componentID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "component_id")
	}
	tagID, err := parseUUID(c.Params("tagId"))
	if err != nil {
		return invalidID(c, "tag_id")
	}

	if err := h.service.RemoveTagFromComponent(c.UserContext(), componentID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag removed"})
}

// CreateTag is the tag manager form: no component involved
// POST /api/v1/tags
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	tag, err := h.service.CreateTag(c.UserContext(), req.TagText, req.CatText)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Tag saved", "data": tag})
}

func (h *TagHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.service.ListTags(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

func (h *TagHandler) GetUncategorized(c *fiber.Ctx) error {
	tags, err := h.service.ListUncategorized(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

func (h *TagHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// DeleteTag removes a tag from every component and category
// DELETE /api/v1/tags/:id
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	tagID, err := parseUUID(c.Params("id"))
	if err != nil {
		return invalidID(c, "tag_id")
	}

	deleted, err := h.service.DeleteTag(c.UserContext(), tagID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": deleted})
}
