package model

import (
	"time"

	"github.com/google/uuid"
)

// Session holds one visitor's working state. It lives in memory only and is
// dropped when the process exits; nothing here touches disk or a database.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Record    CandidateRecord `json:"record"`
	Warnings  []string        `json:"warnings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Record:    NewCandidateRecord(),
		Warnings:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
