package rosterrepo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) Repository {
	return &postgresRepository{
		db: db,
	}
}

//go:embed sql/selectTopics.sql
var selectTopics string

//go:embed sql/selectContributors.sql
var selectContributors string

//go:embed sql/selectReviewers.sql
var selectReviewers string

//go:embed sql/selectTopicByKey.sql
var selectTopicByKey string

//go:embed sql/selectTopicByKeyForUpdate.sql
var selectTopicByKeyForUpdate string

//go:embed sql/selectTopicContributors.sql
var selectTopicContributors string

//go:embed sql/selectTopicReviewers.sql
var selectTopicReviewers string

//go:embed sql/countTopics.sql
var countTopics string

//go:embed sql/insertTopic.sql
var insertTopic string

//go:embed sql/insertContributor.sql
var insertContributor string

//go:embed sql/insertReviewer.sql
var insertReviewer string

//go:embed sql/deleteReviewers.sql
var deleteReviewers string

func (r *postgresRepository) List(ctx context.Context) ([]domain.Topic, error) {
	rows, err := r.db.Query(ctx, selectTopics)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		topic := domain.Topic{
			Contributors: []domain.Contributor{},
			Reviewers:    []domain.Reviewer{},
		}
		if err := rows.Scan(&topic.ID, &topic.Title); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}

		index[topic.ID] = len(topics)
		topics = append(topics, topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	contributorRows, err := r.db.Query(ctx, selectContributors)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	defer contributorRows.Close()

	for contributorRows.Next() {
		var (
			topicID uuid.UUID
			c       domain.Contributor
		)
		if err := contributorRows.Scan(&topicID, &c.Name, &c.Username); err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}

		if i, ok := index[topicID]; ok {
			topics[i].Contributors = append(topics[i].Contributors, c)
		}
	}

	if err := contributorRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	reviewerRows, err := r.db.Query(ctx, selectReviewers)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	defer reviewerRows.Close()

	for reviewerRows.Next() {
		var (
			topicID uuid.UUID
			rv      domain.Reviewer
		)
		if err := reviewerRows.Scan(&rv.ID, &topicID, &rv.Name, &rv.Username, &rv.Status); err != nil {
			return nil, fmt.Errorf("scan reviewer: %w", err)
		}

		if i, ok := index[topicID]; ok {
			topics[i].Reviewers = append(topics[i].Reviewers, rv)
		}
	}

	if err := reviewerRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return topics, nil
}

func (r *postgresRepository) Get(ctx context.Context, topicKey string) (domain.Topic, error) {
	return loadTopic(ctx, r.db, selectTopicByKey, topicKey)
}

func (r *postgresRepository) Update(ctx context.Context, topicKey string, fn UpdateFunc) (domain.Topic, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	topic, err := loadTopic(ctx, tx, selectTopicByKeyForUpdate, topicKey)
	if err != nil {
		return domain.Topic{}, err
	}

	if err := fn(&topic); err != nil {
		return domain.Topic{}, err
	}

	if _, err := tx.Exec(ctx, deleteReviewers, topic.ID); err != nil {
		return domain.Topic{}, fmt.Errorf("failed to clear reviewers of topic %s: %w", topic.ID, err)
	}

	if err := insertReviewers(ctx, tx, topic); err != nil {
		return domain.Topic{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Topic{}, fmt.Errorf("transaction uncommitted: %w", err)
	}

	return topic, nil
}

func (r *postgresRepository) Seed(ctx context.Context, topics []domain.Topic) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, countTopics).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count topics: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for pos, topic := range topics {
		if _, err := tx.Exec(ctx, insertTopic, topic.ID, pos, topic.Title); err != nil {
			return false, fmt.Errorf("failed to save topic %s: %w", topic.Title, err)
		}

		for i, c := range topic.Contributors {
			if _, err := tx.Exec(ctx, insertContributor, topic.ID, i, c.Name, c.Username); err != nil {
				return false, fmt.Errorf("failed to save contributor %s: %w", c.Name, err)
			}
		}

		if err := insertReviewers(ctx, tx, topic); err != nil {
			return false, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("transaction uncommitted: %w", err)
	}

	return true, nil
}

func loadTopic(ctx context.Context, q querier, query, topicKey string) (domain.Topic, error) {
	topic := domain.Topic{
		Contributors: []domain.Contributor{},
		Reviewers:    []domain.Reviewer{},
	}

	err := q.QueryRow(ctx, query, topicKey).Scan(&topic.ID, &topic.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Topic{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Topic{}, fmt.Errorf("failed to get topic %s: %w", topicKey, err)
	}

	rows, err := q.Query(ctx, selectTopicContributors, topic.ID)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("failed to load contributors: %w", err)
	}

	for rows.Next() {
		var c domain.Contributor
		if err := rows.Scan(&c.Name, &c.Username); err != nil {
			rows.Close()
			return domain.Topic{}, fmt.Errorf("scan contributor: %w", err)
		}

		topic.Contributors = append(topic.Contributors, c)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return domain.Topic{}, fmt.Errorf("rows iteration error: %w", err)
	}

	rows, err = q.Query(ctx, selectTopicReviewers, topic.ID)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("failed to load reviewers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv domain.Reviewer
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Username, &rv.Status); err != nil {
			return domain.Topic{}, fmt.Errorf("scan reviewer: %w", err)
		}

		topic.Reviewers = append(topic.Reviewers, rv)
	}

	if err := rows.Err(); err != nil {
		return domain.Topic{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return topic, nil
}

func insertReviewers(ctx context.Context, q querier, topic domain.Topic) error {
	for i, rv := range topic.Reviewers {
		_, err := q.Exec(ctx, insertReviewer,
			rv.ID, topic.ID, i, rv.Name, rv.Username, string(rv.Status))
		if err != nil {
			return fmt.Errorf("failed to assign reviewer %s: %w", rv.Name, err)
		}
	}

	return nil
}
