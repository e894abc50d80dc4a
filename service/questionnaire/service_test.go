package questionnaireserv

import (
	"context"
	"fmt"
	"testing"

	questionnairerepo "github.com/dafuqqqyunglean/assign_reviewer/database/questionnaire"
	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogue(n int) []domain.Questionnaire {
	items := make([]domain.Questionnaire, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.Questionnaire{
			ID:       i,
			Type:     fmt.Sprintf("Type %d", i),
			Children: []domain.QuestionnaireChild{{ID: i * 100, Name: fmt.Sprintf("Child %d", i)}},
		})
	}

	return items
}

func TestListSearchMatchesTypeOrChild(t *testing.T) {
	svc := NewService(questionnairerepo.NewRepo([]domain.Questionnaire{
		{ID: 1, Type: "Review", Children: []domain.QuestionnaireChild{{ID: 10, Name: "Design doc"}}},
		{ID: 2, Type: "Survey", Children: []domain.QuestionnaireChild{{ID: 20, Name: "Course REVIEW form"}}},
		{ID: 3, Type: "Quiz", Children: []domain.QuestionnaireChild{}},
	}))

	page, err := svc.List(context.Background(), domain.QuestionnaireQuery{Search: "review"})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0].ID)
	assert.Equal(t, 2, page.Items[1].ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListSearchKeepsWhitespace(t *testing.T) {
	svc := NewService(questionnairerepo.NewRepo([]domain.Questionnaire{
		{ID: 1, Type: "Review", Children: []domain.QuestionnaireChild{{ID: 10, Name: "Design doc"}}},
		{ID: 2, Type: "Quiz", Children: []domain.QuestionnaireChild{{ID: 20, Name: "Ruby"}}},
	}))

	page, err := svc.List(context.Background(), domain.QuestionnaireQuery{Search: " "})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].ID)

	page, err = svc.List(context.Background(), domain.QuestionnaireQuery{Search: " review"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
}

func TestListPagination(t *testing.T) {
	svc := NewService(questionnairerepo.NewRepo(catalogue(32)))
	ctx := context.Background()

	page, err := svc.List(ctx, domain.QuestionnaireQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, page.PerPage)
	assert.Equal(t, 4, page.TotalPages)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Items[0].ID)

	page, err = svc.List(ctx, domain.QuestionnaireQuery{Page: 2, PerPage: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 7)
	assert.Equal(t, 26, page.Items[0].ID)

	page, err = svc.List(ctx, domain.QuestionnaireQuery{Page: 99, PerPage: 15})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(ctx, domain.QuestionnaireQuery{Page: -4, PerPage: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPerPage, page.PerPage)
}

func TestListNoMatches(t *testing.T) {
	svc := NewService(questionnairerepo.NewRepo(catalogue(3)))

	page, err := svc.List(context.Background(), domain.QuestionnaireQuery{Search: "zzz", Page: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}

func TestGet(t *testing.T) {
	svc := NewService(questionnairerepo.NewRepo(catalogue(3)))

	q, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Type 2", q.Type)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
