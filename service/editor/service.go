// Package editorserv drives the "add reviewer" dialog: a session is opened for one
// topic, then either submitted (which adds the reviewer) or cancelled.
package editorserv

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	rosterserv "github.com/dafuqqqyunglean/assign_reviewer/service/roster"
	"github.com/google/uuid"
)

const DefaultSessionTTL = 30 * time.Minute

type Service interface {
	Open(ctx context.Context, topicKey string) (domain.EditorSession, error)
	Submit(ctx context.Context, req domain.SubmitEditorRequest) (domain.TopicRow, error)
	Cancel(ctx context.Context, sessionID string) (domain.CancelEditorResponse, error)
}

type impl struct {
	roster rosterserv.Service
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]domain.EditorSession
}

func NewService(roster rosterserv.Service, ttl time.Duration) Service {
	return newService(roster, ttl, time.Now)
}

func newService(roster rosterserv.Service, ttl time.Duration, now func() time.Time) *impl {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &impl{
		roster:   roster,
		ttl:      ttl,
		now:      now,
		sessions: make(map[uuid.UUID]domain.EditorSession),
	}
}

func (s *impl) Open(ctx context.Context, topicKey string) (domain.EditorSession, error) {
	row, err := s.roster.GetTopic(ctx, topicKey)
	if err != nil {
		return domain.EditorSession{}, err
	}

	contributors := make([]string, 0, len(row.Contributors))
	for _, c := range row.Contributors {
		contributors = append(contributors, c.Label())
	}

	session := domain.EditorSession{
		ID:           uuid.New(),
		TopicID:      row.ID,
		Topic:        row.Title,
		Contributors: contributors,
		ExpiresAt:    s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	slog.Info("editor opened",
		"session_id", session.ID,
		"topic", session.Topic)

	return session, nil
}

// Submit keeps the session open when validation fails so the form can be corrected.
func (s *impl) Submit(ctx context.Context, req domain.SubmitEditorRequest) (domain.TopicRow, error) {
	session, err := s.lookup(req.SessionID)
	if err != nil {
		slog.Warn("editor submit for unknown session", "session_id", req.SessionID)
		return domain.TopicRow{}, err
	}

	if strings.TrimSpace(req.ReviewerName) == "" {
		slog.Warn("editor submit validation failed",
			"session_id", session.ID,
			"error", "reviewer name is required")

		return domain.TopicRow{}, domain.ErrValidation
	}

	row, err := s.roster.AddReviewer(ctx, domain.AddReviewerRequest{
		Topic:            session.TopicID.String(),
		ReviewerName:     req.ReviewerName,
		ReviewerUsername: req.ReviewerUsername,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.close(session.ID)
		}

		return domain.TopicRow{}, err
	}

	s.close(session.ID)

	slog.Info("editor submitted",
		"session_id", session.ID,
		"topic", session.Topic)

	return row, nil
}

func (s *impl) Cancel(_ context.Context, sessionID string) (domain.CancelEditorResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		slog.Warn("editor cancel for unknown session", "session_id", sessionID)
		return domain.CancelEditorResponse{}, err
	}

	s.close(session.ID)

	slog.Info("editor cancelled", "session_id", session.ID)

	return domain.CancelEditorResponse{SessionID: session.ID, Closed: true}, nil
}

func (s *impl) lookup(sessionID string) (domain.EditorSession, error) {
	id, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return domain.EditorSession{}, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.EditorSession{}, domain.ErrNotFound
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return domain.EditorSession{}, domain.ErrNotFound
	}

	return session, nil
}

func (s *impl) close(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *impl) pruneLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
