package rosterrepo

import (
	"context"
	"sync"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

type memoryRepository struct {
	mu     sync.RWMutex
	topics []domain.Topic
}

func NewMemoryRepo() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) List(_ context.Context) ([]domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]domain.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		topics = append(topics, t.Clone())
	}

	return topics, nil
}

func (r *memoryRepository) Get(_ context.Context, topicKey string) (domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(topicKey)
	if i < 0 {
		return domain.Topic{}, domain.ErrNotFound
	}

	return r.topics[i].Clone(), nil
}

func (r *memoryRepository) Update(_ context.Context, topicKey string, fn UpdateFunc) (domain.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(topicKey)
	if i < 0 {
		return domain.Topic{}, domain.ErrNotFound
	}

	draft := r.topics[i].Clone()
	if err := fn(&draft); err != nil {
		return domain.Topic{}, err
	}

	r.topics[i] = draft

	return draft.Clone(), nil
}

func (r *memoryRepository) Seed(_ context.Context, topics []domain.Topic) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.topics) > 0 {
		return false, nil
	}

	r.topics = make([]domain.Topic, 0, len(topics))
	for _, t := range topics {
		r.topics = append(r.topics, t.Clone())
	}

	return true, nil
}

// index prefers an id match over a title match so that a title which happens to
// look like another topic's id cannot shadow it.
func (r *memoryRepository) index(topicKey string) int {
	byTitle := -1
	for i, t := range r.topics {
		if t.MatchesKey(topicKey) {
			if t.Title != topicKey {
				return i
			}
			if byTitle < 0 {
				byTitle = i
			}
		}
	}

	return byTitle
}
