package questionnairerepo

import (
	"context"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Questionnaire, error)
	Get(ctx context.Context, id int) (domain.Questionnaire, error)
}

// repository serves a fixed catalogue; it is never written after construction.
type repository struct {
	items []domain.Questionnaire
}

func NewRepo(items []domain.Questionnaire) Repository {
	return &repository{
		items: items,
	}
}

func (r *repository) List(_ context.Context) ([]domain.Questionnaire, error) {
	items := make([]domain.Questionnaire, 0, len(r.items))
	for _, q := range r.items {
		items = append(items, clone(q))
	}

	return items, nil
}

func (r *repository) Get(_ context.Context, id int) (domain.Questionnaire, error) {
	for _, q := range r.items {
		if q.ID == id {
			return clone(q), nil
		}
	}

	return domain.Questionnaire{}, domain.ErrNotFound
}

func clone(q domain.Questionnaire) domain.Questionnaire {
	q.Children = append([]domain.QuestionnaireChild{}, q.Children...)
	return q
}
