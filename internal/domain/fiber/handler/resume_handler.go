package handler

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/resume-generator/internal/dto"
	"github.com/fadilmartias/resume-generator/internal/middleware"
	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/fadilmartias/resume-generator/internal/repository"
	"github.com/fadilmartias/resume-generator/internal/usecase"
	"github.com/fadilmartias/resume-generator/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 5 * 1024 * 1024

type ResumeHandler struct {
	sessions    *repository.SessionRepository
	parse       *usecase.ParseUsecase
	compose     *usecase.ComposeUsecase
	coverLetter *usecase.CoverLetterUsecase
}

func NewResumeHandler(sessions *repository.SessionRepository, parse *usecase.ParseUsecase, compose *usecase.ComposeUsecase, coverLetter *usecase.CoverLetterUsecase) *ResumeHandler {
	return &ResumeHandler{sessions: sessions, parse: parse, compose: compose, coverLetter: coverLetter}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/sessions", h.CreateSession)
	app.Post("/sessions/:id/resume", middleware.RateLimiter(1, 4*time.Second), h.UploadResume)
	app.Get("/sessions/:id/record", h.GetRecord)
	app.Put("/sessions/:id/record", h.UpdateRecord)
	app.Post("/sessions/:id/generate/resume", middleware.RateLimiter(1, 4*time.Second), h.GenerateResume)
	app.Post("/sessions/:id/generate/cover-letter", middleware.RateLimiter(1, 4*time.Second), h.GenerateCoverLetter)
}

func (h *ResumeHandler) CreateSession(c *fiber.Ctx) error {
	session := h.sessions.CreateSession()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Session created",
		Data:    dto.NewSessionDTO(session),
	})
}

// UploadResume extracts and parses an uploaded PDF, overwriting the session
// record wholesale. Only an unreadable document fails the action; a model
// that misbehaves degrades to an empty record plus warnings.
func (h *ResumeHandler) UploadResume(c *fiber.Ctx) error {
	session, err := h.sessions.FindSessionByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		}, err)
	}

	data, err := h.readUpload(c, "resume")
	if err != nil {
		return err
	}

	text, err := util.ExtractPDF(data)
	if err != nil {
		if errors.Is(err, util.ErrNoTextFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnprocessableEntity,
				Message: "no readable text in the document, please enter your details manually",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to extract resume text",
		}, err)
	}

	record, warnings := h.parse.Parse(c.UserContext(), text)
	session.Record = record
	session.Warnings = warnings
	session.UpdatedAt = time.Now()
	if err := h.sessions.UpdateSession(session); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update session",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume parsed",
		Data:    dto.NewSessionDTO(session),
	})
}

func (h *ResumeHandler) GetRecord(c *fiber.Ctx) error {
	session, err := h.sessions.FindSessionByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get record",
		Data:    dto.NewSessionDTO(session),
	})
}

// UpdateRecord applies direct user edits. The body is a full record; the
// normalize pass keeps the always-present-fields invariant after any edit.
func (h *ResumeHandler) UpdateRecord(c *fiber.Ctx) error {
	session, err := h.sessions.FindSessionByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		}, err)
	}

	var record model.CandidateRecord
	if err := c.BodyParser(&record); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid record payload",
		}, err)
	}
	record.Normalize()

	session.Record = record
	session.Warnings = []string{}
	session.UpdatedAt = time.Now()
	if err := h.sessions.UpdateSession(session); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update session",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Record updated",
		Data:    dto.NewSessionDTO(session),
	})
}

// GenerateResume composes the document. format=pdf streams the rendered PDF;
// the default (html) returns the HTML artifact in the envelope. When the PDF
// renderer fails the HTML artifact is returned anyway with a warning.
func (h *ResumeHandler) GenerateResume(c *fiber.Ctx) error {
	session, err := h.sessions.FindSessionByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		}, err)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request payload",
		}, err)
	}

	artifact, err := h.compose.ComposeResume(c.UserContext(), session.Record, req.JobDescription)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to compose resume",
		}, err)
	}

	if c.Query("format", "html") == "pdf" {
		if err := h.compose.RenderPDF(c.UserContext(), artifact); err == nil {
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, artifact.Filename))
			return c.Send(artifact.PDF)
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Resume generated (PDF rendering unavailable)",
			Data: dto.ResumeArtifactDTO{
				Filename: artifact.Filename + ".html",
				HTML:     artifact.HTML,
				Warnings: []string{"pdf rendering failed, html artifact returned instead"},
			},
		})
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume generated",
		Data: dto.ResumeArtifactDTO{
			Filename: artifact.Filename + ".html",
			HTML:     artifact.HTML,
		},
	})
}

func (h *ResumeHandler) GenerateCoverLetter(c *fiber.Ctx) error {
	session, err := h.sessions.FindSessionByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		}, err)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request payload",
		}, err)
	}

	letter, err := h.coverLetter.GenerateCoverLetter(c.UserContext(), session.Record, req.JobDescription)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate cover letter",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Cover letter generated",
		Data: dto.CoverLetterDTO{
			Filename: util.SanitizeFilename(session.Record.Name, "cover_letter", time.Now()) + ".txt",
			Content:  letter,
		},
	})
}

// readUpload pulls the multipart file into memory. Uploads never touch disk;
// nothing beyond the session should hold candidate data.
func (h *ResumeHandler) readUpload(c *fiber.Ctx, fieldName string) ([]byte, error) {
	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file is required", fieldName),
		}, err)
	}

	if fileHeader.Size > maxUploadBytes {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file size is too large (max 5MB)", fieldName),
		}, nil)
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("unsupported %s file type %s, only PDF is accepted", fieldName, ext),
		}, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot read %s file", fieldName),
		}, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot read %s file", fieldName),
		}, err)
	}
	return data, nil
}
