package repository

import (
	"context"
	"errors"

	"classpoll/internal/domain/poll"
	poll_errors "classpoll/pkg/errors"

	"gorm.io/gorm"
)

type PostgresVoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &PostgresVoteRepository{db: db}
}

func (r *PostgresVoteRepository) GetOption(ctx context.Context, pollID, optionID uint) (poll.Option, error) {
	var o poll.Option
	err := r.db.WithContext(ctx).
		Where("id = ? AND poll_id = ?", optionID, pollID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll.Option{}, poll_errors.ErrNotFound
		}
		return poll.Option{}, err
	}
	return o, nil
}

func (r *PostgresVoteRepository) HasVoted(ctx context.Context, pollID uint, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&poll.Vote{}).
		Where("poll_id = ? AND username = ?", pollID, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Cast inserts the vote row and bumps the option counter in one transaction.
// The unique index on (poll_id, username) turns a concurrent duplicate into
// ErrAlreadyVoted, and the SQL-side increment cannot lose updates.
func (r *PostgresVoteRepository) Cast(ctx context.Context, v *poll.Vote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return poll_errors.ErrAlreadyVoted
			}
			return err
		}
		return tx.Model(&poll.Option{}).
			Where("id = ?", v.OptionID).
			Update("votes", gorm.Expr("votes + ?", 1)).Error
	})
}

func (r *PostgresVoteRepository) ListByPoll(ctx context.Context, pollID uint) ([]VoteRecord, error) {
	var records []VoteRecord
	err := r.voteQuery(ctx).
		Where("votes.poll_id = ?", pollID).
		Order("votes.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresVoteRepository) ListAll(ctx context.Context) ([]VoteRecord, error) {
	var records []VoteRecord
	err := r.voteQuery(ctx).
		Order("votes.created_at ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresVoteRepository) CountByPoll(ctx context.Context, pollID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&poll.Vote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}

func (r *PostgresVoteRepository) voteQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("votes").
		Select("votes.id AS vote_id, votes.poll_id, polls.title AS poll_title, votes.username, " +
			"options.id AS option_id, options.name AS option_name, votes.created_at").
		Joins("JOIN options ON options.id = votes.option_id").
		Joins("JOIN polls ON polls.id = votes.poll_id")
}
