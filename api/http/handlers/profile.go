package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/brunovmr/trilha/api/http/presenter"
	"github.com/brunovmr/trilha/pkg/resume"
)

type ProfileHandler struct {
	uc resume.UseCase
}

func NewProfileHandler(uc resume.UseCase) *ProfileHandler { return &ProfileHandler{uc: uc} }

// UploadResume receives a résumé file (pdf/docx), extracts its text and
// rebuilds the owner's profile from it.
func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "arquivo ausente no campo 'file'")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "não foi possível abrir o arquivo")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "não foi possível ler o arquivo")
	}

	p, err := h.uc.BuildFromUpload(c.Context(), ownerID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, resume.ErrInsufficientText) {
			return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
		}
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

type buildFromTextRequest struct {
	Text string `json:"text"`
}

// BuildFromText rebuilds the profile from already-extracted plain text.
func (h *ProfileHandler) BuildFromText(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	var req buildFromTextRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON inválido")
	}

	p, err := h.uc.BuildFromText(c.Context(), ownerID, req.Text)
	if err != nil {
		if errors.Is(err, resume.ErrInsufficientText) {
			return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// Get returns the stored profile for an owner.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	p, err := h.uc.Get(c.Context(), ownerID)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "perfil não encontrado")
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type completeCourseRequest struct {
	Name        string     `json:"name"`
	Institution string     `json:"institution"`
	Hours       int        `json:"hours"`
	CompletedAt *time.Time `json:"completedAt"`
	Skills      []string   `json:"skills"`
}

// CompleteCourse records a finished platform course and injects its skills
// into the profile, creating the profile on first completion.
func (h *ProfileHandler) CompleteCourse(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "ownerId inválido")
	}
	var req completeCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON inválido")
	}
	course := resume.CompletedCourse{
		Name:        req.Name,
		Institution: req.Institution,
		Hours:       req.Hours,
	}
	if req.CompletedAt != nil {
		course.CompletedAt = req.CompletedAt.UTC()
	}

	p, err := h.uc.CompleteCourse(c.Context(), ownerID, course, req.Skills)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return presenter.JSON(c, http.StatusOK, p)
}
