package rosterserv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	rosterrepo "github.com/dafuqqqyunglean/assign_reviewer/database/roster"
	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/google/uuid"
)

type Service interface {
	ListTopics(ctx context.Context) (domain.RosterResponse, error)
	GetTopic(ctx context.Context, topicKey string) (domain.TopicRow, error)
	AddReviewer(ctx context.Context, req domain.AddReviewerRequest) (domain.TopicRow, error)
	SetReviewerStatus(ctx context.Context, req domain.SetStatusRequest) (domain.TopicRow, error)
	Unsubmit(ctx context.Context, req domain.ReviewerRequest) (domain.TopicRow, error)
	RemoveReviewer(ctx context.Context, req domain.ReviewerRequest) (domain.TopicRow, error)
	Stats(ctx context.Context) (domain.StatsResponse, error)
}

type Options struct {
	// MaxReviewers caps the reviewer list of a topic. Zero means no cap.
	MaxReviewers int
	// UniqueReviewers rejects a second reviewer with the same name on one topic.
	UniqueReviewers bool
}

type impl struct {
	repo rosterrepo.Repository
	opts Options
}

func NewService(repo rosterrepo.Repository, opts Options) Service {
	return &impl{
		repo: repo,
		opts: opts,
	}
}

func (s *impl) ListTopics(ctx context.Context) (domain.RosterResponse, error) {
	topics, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		return domain.RosterResponse{}, err
	}

	resp := domain.RosterResponse{Topics: make([]domain.TopicRow, 0, len(topics))}
	for _, t := range topics {
		resp.Topics = append(resp.Topics, s.row(t))
	}

	return resp, nil
}

func (s *impl) GetTopic(ctx context.Context, topicKey string) (domain.TopicRow, error) {
	if strings.TrimSpace(topicKey) == "" {
		slog.Error("wrong topic key", "topic", topicKey)
		return domain.TopicRow{}, domain.ErrBadRequest
	}

	topic, err := s.repo.Get(ctx, topicKey)
	if err != nil {
		s.logFailure("failed to get topic", err, "topic", topicKey)
		return domain.TopicRow{}, err
	}

	return s.row(topic), nil
}

func (s *impl) AddReviewer(ctx context.Context, req domain.AddReviewerRequest) (domain.TopicRow, error) {
	if strings.TrimSpace(req.ReviewerName) == "" {
		slog.Warn("reviewer validation failed",
			"topic", req.Topic,
			"error", "reviewer name is required")

		return domain.TopicRow{}, domain.ErrValidation
	}

	reviewer := domain.Reviewer{
		ID:       uuid.New(),
		Name:     req.ReviewerName,
		Username: req.ReviewerUsername,
		Status:   domain.StatusPending,
	}

	topic, err := s.repo.Update(ctx, req.Topic, func(t *domain.Topic) error {
		if s.opts.MaxReviewers > 0 && len(t.Reviewers) >= s.opts.MaxReviewers {
			return domain.ErrReviewerCap
		}
		if s.opts.UniqueReviewers && domain.IndexReviewer(t.Reviewers, req.ReviewerName) >= 0 {
			return domain.ErrReviewerExists
		}

		t.Reviewers = append(t.Reviewers, reviewer)

		return nil
	})
	if err != nil {
		s.logFailure("failed to add reviewer", err,
			"topic", req.Topic,
			"reviewer", req.ReviewerName)

		return domain.TopicRow{}, err
	}

	slog.Info("reviewer added",
		"topic", topic.Title,
		"reviewer", reviewer.Name,
		"reviewer_id", reviewer.ID,
		"reviewers_count", len(topic.Reviewers))

	return s.row(topic), nil
}

func (s *impl) SetReviewerStatus(ctx context.Context, req domain.SetStatusRequest) (domain.TopicRow, error) {
	if err := validateReviewerRequest(req.Topic, req.Reviewer); err != nil {
		slog.Warn("status change validation failed",
			"topic", req.Topic,
			"reviewer", req.Reviewer,
			"error", err)

		return domain.TopicRow{}, domain.ErrBadRequest
	}
	if !req.Status.Valid() {
		slog.Warn("status change validation failed",
			"topic", req.Topic,
			"reviewer", req.Reviewer,
			"status", req.Status)

		return domain.TopicRow{}, domain.ErrBadRequest
	}

	topic, err := s.repo.Update(ctx, req.Topic, func(t *domain.Topic) error {
		i := domain.IndexReviewer(t.Reviewers, req.Reviewer)
		if i < 0 {
			return domain.ErrNotFound
		}

		t.Reviewers[i].Status = req.Status

		return nil
	})
	if err != nil {
		s.logFailure("failed to set reviewer status", err,
			"topic", req.Topic,
			"reviewer", req.Reviewer,
			"status", req.Status)

		return domain.TopicRow{}, err
	}

	slog.Info("reviewer status updated",
		"topic", topic.Title,
		"reviewer", req.Reviewer,
		"status", req.Status)

	return s.row(topic), nil
}

func (s *impl) Unsubmit(ctx context.Context, req domain.ReviewerRequest) (domain.TopicRow, error) {
	return s.SetReviewerStatus(ctx, domain.SetStatusRequest{
		Topic:    req.Topic,
		Reviewer: req.Reviewer,
		Status:   domain.StatusPending,
	})
}

func (s *impl) RemoveReviewer(ctx context.Context, req domain.ReviewerRequest) (domain.TopicRow, error) {
	if err := validateReviewerRequest(req.Topic, req.Reviewer); err != nil {
		slog.Warn("remove reviewer validation failed",
			"topic", req.Topic,
			"reviewer", req.Reviewer,
			"error", err)

		return domain.TopicRow{}, domain.ErrBadRequest
	}

	var removed domain.Reviewer
	topic, err := s.repo.Update(ctx, req.Topic, func(t *domain.Topic) error {
		i := domain.IndexReviewer(t.Reviewers, req.Reviewer)
		if i < 0 {
			return domain.ErrNotFound
		}

		removed = t.Reviewers[i]
		t.Reviewers = append(t.Reviewers[:i], t.Reviewers[i+1:]...)

		return nil
	})
	if err != nil {
		s.logFailure("failed to remove reviewer", err,
			"topic", req.Topic,
			"reviewer", req.Reviewer)

		return domain.TopicRow{}, err
	}

	slog.Info("reviewer removed",
		"topic", topic.Title,
		"reviewer", removed.Name,
		"reviewer_id", removed.ID,
		"reviewers_count", len(topic.Reviewers))

	return s.row(topic), nil
}

func (s *impl) Stats(ctx context.Context) (domain.StatsResponse, error) {
	topics, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("failed to collect roster stats", "error", err)
		return domain.StatsResponse{}, err
	}

	resp := domain.StatsResponse{Topics: make([]domain.TopicStats, 0, len(topics))}
	for _, t := range topics {
		st := domain.TopicStats{
			TopicID:   t.ID,
			Topic:     t.Title,
			Reviewers: len(t.Reviewers),
		}
		for _, r := range t.Reviewers {
			switch r.Status {
			case domain.StatusPending:
				st.Pending++
			case domain.StatusSubmitted:
				st.Submitted++
			}
		}

		resp.Reviewers += st.Reviewers
		resp.Pending += st.Pending
		resp.Submitted += st.Submitted
		resp.Topics = append(resp.Topics, st)
	}

	return resp, nil
}

func (s *impl) row(t domain.Topic) domain.TopicRow {
	return domain.TopicRow{
		Topic:          t,
		CanAddReviewer: s.opts.MaxReviewers <= 0 || len(t.Reviewers) < s.opts.MaxReviewers,
	}
}

// logFailure logs missing topics and reviewers as contract violations at warn level;
// keys come from rendered rows, so a miss means the caller is out of sync.
func (s *impl) logFailure(msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err)

	var de domain.Error
	if errors.As(err, &de) {
		slog.Warn(msg, attrs...)
		return
	}

	slog.Error(msg, attrs...)
}

func validateReviewerRequest(topic, reviewer string) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if strings.TrimSpace(reviewer) == "" {
		return fmt.Errorf("reviewer is required")
	}

	return nil
}
