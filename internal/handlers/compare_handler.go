package handlers

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
)

type CompareHandler struct {
	screeningService services.ScreeningService
	uploadService    services.UploadService
	validator        *validator.Validate
}

func NewCompareHandler(
	screeningService services.ScreeningService,
	uploadService services.UploadService,
) *CompareHandler {
	return &CompareHandler{
		screeningService: screeningService,
		uploadService:    uploadService,
		validator:        validator.New(),
	}
}

// HandleCompare handles POST /compare. The body is either JSON or a
// multipart form carrying the shortlist as a JSON field.
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	var (
		req            models.CompareRequest
		jobDescription models.JobDescription
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return RespondError(c, badRequest("failed to parse multipart form"))
		}

		shortlist := form.Value["shortlist"]
		if len(shortlist) == 0 {
			return RespondError(c, badRequest("shortlist is required"))
		}
		if err := json.Unmarshal([]byte(shortlist[0]), &req.Shortlist); err != nil {
			return RespondError(c, badRequest("shortlist must be a JSON array of screening results"))
		}

		jobDescription, err = jobDescriptionFromForm(form, h.uploadService)
		if err != nil {
			return RespondError(c, err)
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return RespondError(c, badRequest("Invalid request payload"))
		}
		jobDescription = models.JobDescriptionFromText(req.JobDescription)
	}

	if err := h.validator.Struct(req); err != nil {
		return RespondError(c, badRequest("%s", extractValidationErrors(err)))
	}

	analysis, err := h.screeningService.CompareCandidates(c.UserContext(), jobDescription, req.Shortlist)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(models.CompareResponse{Analysis: analysis})
}
