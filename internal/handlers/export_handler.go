package handlers

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
)

type ExportHandler struct {
	validator *validator.Validate
}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{
		validator: validator.New(),
	}
}

// HandleExport handles POST /export
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	var req models.ExportRequest

	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, badRequest("Invalid request payload"))
	}

	if err := h.validator.Struct(req); err != nil {
		return RespondError(c, badRequest("%s", extractValidationErrors(err)))
	}

	var buf bytes.Buffer
	if err := services.ExportCSV(&buf, req.Results); err != nil {
		return RespondError(c, fmt.Errorf("failed to export results: %w", err))
	}

	c.Attachment(services.ExportFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
