package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/service"
)

type createPublisherRequest struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// @Summary Create a publisher (admin)
// @Tags publishers
// @Accept json
// @Produce json
// @Param body body createPublisherRequest true "publisher"
// @Success 201 {object} model.Publisher
// @Failure 400,403 {object} errorPayload
// @Security BearerAuth
// @Router /publishers [post]
func CreatePublisher(svc service.PublisherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPublisherRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "malformed request body")
		}
		p, err := svc.Create(c.UserContext(), req.Name, req.Logo)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UploadPublisherLogo stores the multipart "logo" file in object storage.
// @Summary Upload a publisher logo (admin)
// @Tags publishers
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "image file"
// @Success 201 {object} service.LogoUpload
// @Failure 400,403 {object} errorPayload
// @Security BearerAuth
// @Router /publishers/logo [post]
func UploadPublisherLogo(svc service.PublisherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("logo")
		if err != nil {
			return badRequest(c, "logo file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "cannot read uploaded file")
		}
		defer f.Close()

		up, err := svc.UploadLogo(c.UserContext(), f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(up)
	}
}

// @Summary List publishers
// @Tags publishers
// @Produce json
// @Success 200 {array} model.Publisher
// @Router /publishers [get]
func ListPublishers(svc service.PublisherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}
