package repository

import (
	"context"
	"errors"

	"classpoll/internal/domain/poll"
	poll_errors "classpoll/pkg/errors"

	"gorm.io/gorm"
)

type PostgresTextResponseRepository struct {
	db *gorm.DB
}

func NewTextResponseRepository(db *gorm.DB) TextResponseRepository {
	return &PostgresTextResponseRepository{db: db}
}

func (r *PostgresTextResponseRepository) Create(ctx context.Context, tr *poll.TextResponse) error {
	err := r.db.WithContext(ctx).Create(tr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return poll_errors.ErrAlreadyResponded
		}
		return err
	}
	return nil
}

func (r *PostgresTextResponseRepository) ListByPoll(ctx context.Context, pollID uint) ([]poll.TextResponse, error) {
	var responses []poll.TextResponse
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *PostgresTextResponseRepository) CountByPoll(ctx context.Context, pollID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&poll.TextResponse{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}
