// Package fixture loads the static roster and questionnaire data the service is
// seeded with. Files are decoded as YAML when their extension is .yaml or .yml and
// as JSON otherwise; an empty path selects the embedded default.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed roster.json
var defaultRoster []byte

//go:embed questionnaires.json
var defaultQuestionnaires []byte

type contributorRecord struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
}

type reviewerRecord struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Status   string `json:"status" yaml:"status"`
}

type topicRecord struct {
	Topic        string              `json:"topic" yaml:"topic"`
	Contributors []contributorRecord `json:"contributors" yaml:"contributors"`
	Reviewers    []reviewerRecord    `json:"reviewers" yaml:"reviewers"`
}

type childRecord struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type questionnaireRecord struct {
	ID       int           `json:"id" yaml:"id"`
	Type     string        `json:"type" yaml:"type"`
	Name     string        `json:"name" yaml:"name"`
	Children []childRecord `json:"children" yaml:"children"`
}

// LoadTopics reads a roster fixture and assigns fresh ids to every topic and reviewer.
func LoadTopics(path string) ([]domain.Topic, error) {
	var records []topicRecord
	if err := load(path, defaultRoster, &records); err != nil {
		return nil, fmt.Errorf("failed to load roster fixture: %w", err)
	}

	return parseTopics(records)
}

// parseTopics validates decoded records: titles must be present and unique, reviewer
// names present and statuses one of Pending or Submitted.
func parseTopics(records []topicRecord) ([]domain.Topic, error) {
	topics := make([]domain.Topic, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		title := strings.TrimSpace(rec.Topic)
		if title == "" {
			return nil, fmt.Errorf("topic %d: title is required", i)
		}
		if seen[title] {
			return nil, fmt.Errorf("duplicate topic: %s", title)
		}
		seen[title] = true

		topic := domain.Topic{
			ID:           uuid.New(),
			Title:        title,
			Contributors: make([]domain.Contributor, 0, len(rec.Contributors)),
			Reviewers:    make([]domain.Reviewer, 0, len(rec.Reviewers)),
		}

		for _, c := range rec.Contributors {
			topic.Contributors = append(topic.Contributors, domain.Contributor{
				Name:     c.Name,
				Username: c.Username,
			})
		}

		for j, r := range rec.Reviewers {
			status := domain.ReviewerStatus(r.Status)
			if r.Status == "" {
				status = domain.StatusPending
			}
			if !status.Valid() {
				return nil, fmt.Errorf("topic %s: reviewer %d: invalid status %q", title, j, r.Status)
			}
			if strings.TrimSpace(r.Name) == "" {
				return nil, fmt.Errorf("topic %s: reviewer %d: name is required", title, j)
			}

			topic.Reviewers = append(topic.Reviewers, domain.Reviewer{
				ID:       uuid.New(),
				Name:     r.Name,
				Username: r.Username,
				Status:   status,
			})
		}

		topics = append(topics, topic)
	}

	return topics, nil
}

func LoadQuestionnaires(path string) ([]domain.Questionnaire, error) {
	var records []questionnaireRecord
	if err := load(path, defaultQuestionnaires, &records); err != nil {
		return nil, fmt.Errorf("failed to load questionnaire fixture: %w", err)
	}

	items := make([]domain.Questionnaire, 0, len(records))
	seen := make(map[int]bool, len(records))

	for _, rec := range records {
		if seen[rec.ID] {
			return nil, fmt.Errorf("duplicate questionnaire id: %d", rec.ID)
		}
		seen[rec.ID] = true

		q := domain.Questionnaire{
			ID:       rec.ID,
			Type:     rec.Type,
			Name:     rec.Name,
			Children: make([]domain.QuestionnaireChild, 0, len(rec.Children)),
		}
		for _, c := range rec.Children {
			q.Children = append(q.Children, domain.QuestionnaireChild{ID: c.ID, Name: c.Name})
		}

		items = append(items, q)
	}

	return items, nil
}

func load(path string, fallback []byte, out any) error {
	if path == "" {
		return json.Unmarshal(fallback, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
