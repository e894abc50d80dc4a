package domain

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func WriteResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// TopicRow is one line of the assignment table.
type TopicRow struct {
	Topic
	CanAddReviewer bool `json:"can_add_reviewer"`
}

type RosterResponse struct {
	Topics []TopicRow `json:"topics"`
}

type TopicStats struct {
	TopicID   uuid.UUID `json:"topic_id"`
	Topic     string    `json:"topic"`
	Reviewers int       `json:"reviewers"`
	Pending   int       `json:"pending"`
	Submitted int       `json:"submitted"`
}

type StatsResponse struct {
	Topics    []TopicStats `json:"topics"`
	Reviewers int          `json:"reviewers"`
	Pending   int          `json:"pending"`
	Submitted int          `json:"submitted"`
}

type EditorSession struct {
	ID           uuid.UUID `json:"session_id"`
	TopicID      uuid.UUID `json:"topic_id"`
	Topic        string    `json:"topic"`
	Contributors []string  `json:"contributors"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type CancelEditorResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Closed    bool      `json:"closed"`
}

type QuestionnairePage struct {
	Items      []Questionnaire `json:"items"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}
