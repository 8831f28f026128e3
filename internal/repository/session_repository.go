package repository

import (
	"fmt"
	"sync"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/google/uuid"
)

// SessionRepository keeps sessions in process memory. Records are never
// persisted beyond the active session, so there is no database behind this.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]*model.Session)}
}

func (r *SessionRepository) CreateSession() *model.Session {
	session := model.NewSession()
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

func (r *SessionRepository) FindSessionByID(id string) (*model.Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[parsed]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return session, nil
}

func (r *SessionRepository) UpdateSession(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("session %s not found", session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}
