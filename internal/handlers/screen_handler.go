package handlers

import (
	"fmt"
	"maps"
	"mime/multipart"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
)

type ScreenHandler struct {
	screeningService services.ScreeningService
	uploadService    services.UploadService
}

func NewScreenHandler(
	screeningService services.ScreeningService,
	uploadService services.UploadService,
) *ScreenHandler {
	return &ScreenHandler{
		screeningService: screeningService,
		uploadService:    uploadService,
	}
}

// HandleScreen handles POST /screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return RespondError(c, badRequest("failed to parse multipart form"))
	}

	jobDescription, err := jobDescriptionFromForm(form, h.uploadService)
	if err != nil {
		return RespondError(c, err)
	}

	resumes, err := h.resumesFromForm(form)
	if err != nil {
		return RespondError(c, err)
	}

	results, err := h.screeningService.ScreenCandidates(c.UserContext(), jobDescription, resumes)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(models.ScreenResponse{Results: results})
}

// resumesFromForm collects resumes in submission order. Indexed fields
// (resume_0, resume_1, ...) come first in index order, each holding either
// text or one file; then every "resumes" text field, then every
// "resume_files" file.
func (h *ScreenHandler) resumesFromForm(form *multipart.Form) ([]models.Resume, error) {
	indexed := map[int]bool{}
	for key := range form.Value {
		if n, ok := resumeIndex(key); ok {
			indexed[n] = true
		}
	}
	for key := range form.File {
		if n, ok := resumeIndex(key); ok {
			indexed[n] = true
		}
	}

	resumes := make([]models.Resume, 0, len(indexed)+len(form.Value["resumes"])+len(form.File["resume_files"]))
	addText := func(text string) {
		resumes = append(resumes, models.Resume{ID: len(resumes) + 1, Source: models.TextSource{Text: text}})
	}
	addFile := func(fh *multipart.FileHeader) error {
		file, err := h.uploadService.ReadUpload(fh)
		if err != nil {
			return err
		}
		resumes = append(resumes, models.Resume{ID: len(resumes) + 1, Source: models.FileSource{File: file}})
		return nil
	}

	for _, n := range slices.Sorted(maps.Keys(indexed)) {
		key := fmt.Sprintf("%s%d", resumeFieldPrefix, n)
		texts, files := form.Value[key], form.File[key]
		if len(texts)+len(files) != 1 {
			return nil, badRequest("%s must hold exactly one text or one file", key)
		}
		if len(files) == 1 {
			if err := addFile(files[0]); err != nil {
				return nil, err
			}
			continue
		}
		addText(texts[0])
	}

	for _, text := range form.Value["resumes"] {
		addText(text)
	}
	for _, fh := range form.File["resume_files"] {
		if err := addFile(fh); err != nil {
			return nil, err
		}
	}

	return resumes, nil
}

const resumeFieldPrefix = "resume_"

func resumeIndex(key string) (int, bool) {
	suffix, ok := strings.CutPrefix(key, resumeFieldPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 || strconv.Itoa(n) != suffix {
		return 0, false
	}
	return n, true
}

// jobDescriptionFromForm prefers an uploaded job description file over the
// text field.
func jobDescriptionFromForm(form *multipart.Form, uploads services.UploadService) (models.JobDescription, error) {
	if files := form.File["job_description_file"]; len(files) > 0 {
		file, err := uploads.ReadUpload(files[0])
		if err != nil {
			return models.JobDescription{}, err
		}
		return models.JobDescriptionFromFile(file), nil
	}

	return models.JobDescriptionFromText(strings.Join(form.Value["job_description"], "\n")), nil
}
