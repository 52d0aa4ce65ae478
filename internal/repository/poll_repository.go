package repository

import (
	"context"
	"errors"

	"classpoll/internal/domain/poll"
	poll_errors "classpoll/pkg/errors"

	"gorm.io/gorm"
)

type PostgresPollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &PostgresPollRepository{db: db}
}

func (r *PostgresPollRepository) Create(ctx context.Context, p *poll.Poll, options []poll.Option) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		for i := range options {
			options[i].PollID = p.ID
		}
		return tx.Create(&options).Error
	})
}

func (r *PostgresPollRepository) GetByID(ctx context.Context, id uint) (poll.Poll, error) {
	var p poll.Poll
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id ASC") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll.Poll{}, poll_errors.ErrNotFound
		}
		return poll.Poll{}, err
	}
	return p, nil
}

func (r *PostgresPollRepository) List(ctx context.Context) ([]poll.Poll, error) {
	var polls []poll.Poll
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id ASC") }).
		Order("id ASC").
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *PostgresPollRepository) Update(ctx context.Context, p poll.Poll) error {
	res := r.db.WithContext(ctx).
		Model(&poll.Poll{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"poll_type":   p.PollType,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return poll_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPollRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&poll.Vote{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&poll.TextResponse{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&poll.Option{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&poll.Poll{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return poll_errors.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresPollRepository) GetOptions(ctx context.Context, pollID uint) ([]poll.Option, error) {
	var options []poll.Option
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("id ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *PostgresPollRepository) AddOptions(ctx context.Context, options []poll.Option) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&options).Error
}

func (r *PostgresPollRepository) RemoveOptions(ctx context.Context, pollID uint, optionIDs []uint) error {
	if len(optionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&poll.Vote{}, "poll_id = ? AND option_id IN ?", pollID, optionIDs).Error; err != nil {
			return err
		}
		return tx.Delete(&poll.Option{}, "poll_id = ? AND id IN ?", pollID, optionIDs).Error
	})
}

func (r *PostgresPollRepository) ClearVotes(ctx context.Context, pollID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&poll.Vote{}, "poll_id = ?", pollID).Error; err != nil {
			return err
		}
		return tx.Model(&poll.Option{}).
			Where("poll_id = ?", pollID).
			Update("votes", 0).Error
	})
}
