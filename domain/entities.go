package domain

import (
	"github.com/google/uuid"
)

type ReviewerStatus string

const (
	StatusPending   ReviewerStatus = "Pending"
	StatusSubmitted ReviewerStatus = "Submitted"
)

func (s ReviewerStatus) Valid() bool {
	return s == StatusPending || s == StatusSubmitted
}

type Contributor struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Label is the "Name (username)" form shown next to a topic.
func (c Contributor) Label() string {
	if c.Username == "" {
		return c.Name
	}

	return c.Name + " (" + c.Username + ")"
}

type Reviewer struct {
	ID       uuid.UUID      `json:"reviewer_id"`
	Name     string         `json:"name"`
	Username string         `json:"username,omitempty"`
	Status   ReviewerStatus `json:"status"`
}

type Topic struct {
	ID           uuid.UUID     `json:"topic_id"`
	Title        string        `json:"topic"`
	Contributors []Contributor `json:"contributors"`
	Reviewers    []Reviewer    `json:"reviewers"`
}

// Clone returns a copy of t that shares no slices with it.
func (t Topic) Clone() Topic {
	c := t
	c.Contributors = append([]Contributor{}, t.Contributors...)
	c.Reviewers = append([]Reviewer{}, t.Reviewers...)

	return c
}

// MatchesKey reports whether key names this topic, either by surrogate id or by title.
func (t Topic) MatchesKey(key string) bool {
	if id, err := uuid.Parse(key); err == nil && id == t.ID {
		return true
	}

	return t.Title == key
}

// IndexReviewer returns the position of the reviewer addressed by key, or -1.
// A key that parses as an id matching a reviewer wins; otherwise the first reviewer
// whose name equals key (case-sensitive) is returned.
func IndexReviewer(reviewers []Reviewer, key string) int {
	if id, err := uuid.Parse(key); err == nil {
		for i, r := range reviewers {
			if r.ID == id {
				return i
			}
		}
	}

	for i, r := range reviewers {
		if r.Name == key {
			return i
		}
	}

	return -1
}

type QuestionnaireChild struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Questionnaire struct {
	ID       int                  `json:"id"`
	Type     string               `json:"type"`
	Name     string               `json:"name,omitempty"`
	Children []QuestionnaireChild `json:"children"`
}
