package questionnaireserv

import (
	"context"
	"log/slog"
	"strings"

	questionnairerepo "github.com/dafuqqqyunglean/assign_reviewer/database/questionnaire"
	"github.com/dafuqqqyunglean/assign_reviewer/domain"
)

const DefaultPerPage = 10

// PageSizes are the page sizes offered by the list; anything else falls back to
// DefaultPerPage.
var PageSizes = []int{10, 15, 25}

type Service interface {
	List(ctx context.Context, query domain.QuestionnaireQuery) (domain.QuestionnairePage, error)
	Get(ctx context.Context, id int) (domain.Questionnaire, error)
}

type impl struct {
	repo questionnairerepo.Repository
}

func NewService(repo questionnairerepo.Repository) Service {
	return &impl{
		repo: repo,
	}
}

func (s *impl) List(ctx context.Context, query domain.QuestionnaireQuery) (domain.QuestionnairePage, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("failed to list questionnaires", "error", err)
		return domain.QuestionnairePage{}, err
	}

	matched := filter(items, query.Search)
	perPage := pageSize(query.PerPage)
	totalPages := (len(matched) + perPage - 1) / perPage

	page := query.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*perPage, len(matched))
	end := min(start+perPage, len(matched))

	slog.Debug("questionnaires listed",
		"search", query.Search,
		"matched", len(matched),
		"page", page)

	return domain.QuestionnairePage{
		Items:      matched[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Total:      len(matched),
	}, nil
}

func (s *impl) Get(ctx context.Context, id int) (domain.Questionnaire, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		slog.Warn("failed to get questionnaire", "id", id, "error", err)
		return domain.Questionnaire{}, err
	}

	return q, nil
}

// filter keeps items whose type, or any child's name, contains search ignoring case.
// The term is matched as typed, whitespace included.
func filter(items []domain.Questionnaire, search string) []domain.Questionnaire {
	if search == "" {
		return items
	}

	term := strings.ToLower(search)

	matched := make([]domain.Questionnaire, 0, len(items))
	for _, q := range items {
		if strings.Contains(strings.ToLower(q.Type), term) {
			matched = append(matched, q)
			continue
		}

		for _, c := range q.Children {
			if c.Name != "" && strings.Contains(strings.ToLower(c.Name), term) {
				matched = append(matched, q)
				break
			}
		}
	}

	return matched
}

func pageSize(n int) int {
	for _, size := range PageSizes {
		if n == size {
			return n
		}
	}

	return DefaultPerPage
}
