package dto

import (
	"time"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/google/uuid"
)

type SessionDTO struct {
	ID        uuid.UUID             `json:"id"`
	Record    model.CandidateRecord `json:"record"`
	Warnings  []string              `json:"warnings"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func NewSessionDTO(session *model.Session) SessionDTO {
	return SessionDTO{
		ID:        session.ID,
		Record:    session.Record,
		Warnings:  session.Warnings,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

type GenerateRequest struct {
	JobDescription string `json:"job_description"`
}

type ResumeArtifactDTO struct {
	Filename string   `json:"filename"`
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings,omitempty"`
}

type CoverLetterDTO struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
