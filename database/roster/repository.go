// Package rosterrepo stores the topic roster. Two backends satisfy Repository: an
// in-memory one scoped to the process and a Postgres one.
package rosterrepo

import (
	"context"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

// UpdateFunc edits a private copy of a topic. Returning an error discards the edit.
type UpdateFunc func(topic *domain.Topic) error

type Repository interface {
	List(ctx context.Context) ([]domain.Topic, error)
	Get(ctx context.Context, topicKey string) (domain.Topic, error)
	// Update applies fn to the topic addressed by topicKey atomically and returns the
	// stored result. Lookups that fail return domain.ErrNotFound.
	Update(ctx context.Context, topicKey string, fn UpdateFunc) (domain.Topic, error)
	// Seed stores topics when the roster is empty and reports whether it did.
	Seed(ctx context.Context, topics []domain.Topic) (bool, error)
}
