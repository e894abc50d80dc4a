package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafuqqqyunglean/assign_reviewer/config"
	questionnairerepo "github.com/dafuqqqyunglean/assign_reviewer/database/questionnaire"
	rosterrepo "github.com/dafuqqqyunglean/assign_reviewer/database/roster"
	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/dafuqqqyunglean/assign_reviewer/fixture"
	editorserv "github.com/dafuqqqyunglean/assign_reviewer/service/editor"
	questionnaireserv "github.com/dafuqqqyunglean/assign_reviewer/service/questionnaire"
	rosterserv "github.com/dafuqqqyunglean/assign_reviewer/service/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	topicE2450 = "E2450. Refactor assignments_controller.rb"
	topicE2452 = "E2452. Refactor review_mapping_controller.rb"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	topics, err := fixture.LoadTopics("")
	require.NoError(t, err)
	questionnaires, err := fixture.LoadQuestionnaires("")
	require.NoError(t, err)

	repo := rosterrepo.NewMemoryRepo()
	_, err = repo.Seed(context.Background(), topics)
	require.NoError(t, err)

	roster := rosterserv.NewService(repo, rosterserv.Options{MaxReviewers: 3})
	editor := editorserv.NewService(roster, 0)
	catalogue := questionnaireserv.NewService(questionnairerepo.NewRepo(questionnaires))

	server := NewServer(config.Config{ServerPort: ":0"})
	server.HandleRoutes(roster, editor, catalogue)

	return server.Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestListTopics(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/topics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ApplicationJSON, rec.Header().Get(domain.ContentType))

	resp := decodeBody[domain.RosterResponse](t, rec)
	require.Len(t, resp.Topics, 5)
	assert.Equal(t, topicE2450, resp.Topics[0].Title)
	assert.True(t, resp.Topics[0].CanAddReviewer)
}

func TestAddAndRemoveReviewer(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/topics/reviewers/add", domain.AddReviewerRequest{
		Topic:            topicE2452,
		ReviewerName:     "Dana",
		ReviewerUsername: "dana1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	row := decodeBody[domain.TopicRow](t, rec)
	require.Len(t, row.Reviewers, 1)
	assert.Equal(t, domain.StatusPending, row.Reviewers[0].Status)

	rec = do(t, h, http.MethodPost, "/topics/reviewers/remove", domain.ReviewerRequest{
		Topic:    topicE2452,
		Reviewer: row.Reviewers[0].ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[domain.TopicRow](t, rec).Reviewers)
}

func TestAddReviewerErrors(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/topics/reviewers/add", domain.AddReviewerRequest{Topic: topicE2452, ReviewerName: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.ErrValidation.Code, decodeBody[domain.ErrorResponse](t, rec).Error.Code)

	rec = do(t, h, http.MethodPost, "/topics/reviewers/add", domain.AddReviewerRequest{Topic: "NoSuchTopic", ReviewerName: "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.ErrNotFound.Code, decodeBody[domain.ErrorResponse](t, rec).Error.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/topics/reviewers/add", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/topics/reviewers/add", domain.AddReviewerRequest{Topic: "E2467. UI for View Submissions", ReviewerName: "user4"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/topics/reviewers/add", domain.AddReviewerRequest{Topic: "E2467. UI for View Submissions", ReviewerName: "user5"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.ErrReviewerCap.Code, decodeBody[domain.ErrorResponse](t, rec).Error.Code)
}

func TestUnsubmit(t *testing.T) {
	h := newTestHandler(t)
	req := domain.ReviewerRequest{Topic: topicE2450, Reviewer: "user1"}

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/topics/reviewers/unsubmit", req)
		require.Equal(t, http.StatusOK, rec.Code)

		row := decodeBody[domain.TopicRow](t, rec)
		assert.Equal(t, domain.StatusPending, row.Reviewers[0].Status)
	}

	rec := do(t, h, http.MethodPost, "/topics/reviewers/unsubmit", domain.ReviewerRequest{Topic: topicE2450, Reviewer: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditorFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/editor/open", domain.OpenEditorRequest{Topic: topicE2452})
	require.Equal(t, http.StatusOK, rec.Code)

	session := decodeBody[domain.EditorSession](t, rec)
	assert.Equal(t, []string{"Charlie (charlie123)"}, session.Contributors)

	rec = do(t, h, http.MethodPost, "/editor/submit", domain.SubmitEditorRequest{SessionID: session.ID.String()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/editor/submit", domain.SubmitEditorRequest{
		SessionID:    session.ID.String(),
		ReviewerName: "Dana",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[domain.TopicRow](t, rec).Reviewers, 1)

	rec = do(t, h, http.MethodPost, "/editor/cancel", domain.CancelEditorRequest{SessionID: session.ID.String()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionnaires(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/questionnaires?search=survey&per_page=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeBody[domain.QuestionnairePage](t, rec)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, 1, page.Page)

	rec = do(t, h, http.MethodGet, "/questionnaires?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/questionnaires/get?id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review", decodeBody[domain.Questionnaire](t, rec).Type)

	rec = do(t, h, http.MethodGet, "/questionnaires/get?id=999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/topics/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[domain.StatsResponse](t, rec)
	assert.Equal(t, 7, stats.Reviewers)
	assert.Equal(t, 4, stats.Submitted)
	assert.Equal(t, 3, stats.Pending)
}
