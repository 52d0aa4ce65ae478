package repository

import (
	"context"
	"time"

	"classpoll/internal/domain/poll"
)

// VoteRecord is the read model for vote listings and CSV exports: a vote row
// annotated with its poll title and chosen option name.
type VoteRecord struct {
	VoteID     uint      `gorm:"column:vote_id"`
	PollID     uint      `gorm:"column:poll_id"`
	PollTitle  string    `gorm:"column:poll_title"`
	Username   string    `gorm:"column:username"`
	OptionID   uint      `gorm:"column:option_id"`
	OptionName string    `gorm:"column:option_name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

type PollRepository interface {
	// Create inserts the poll and its options in one transaction.
	Create(ctx context.Context, p *poll.Poll, options []poll.Option) error
	GetByID(ctx context.Context, id uint) (poll.Poll, error)
	// List returns all polls ordered by ascending id with options nested.
	List(ctx context.Context) ([]poll.Poll, error)
	// Update writes the poll's scalar fields (title, description, poll_type).
	Update(ctx context.Context, p poll.Poll) error
	// Delete removes the poll and cascades to options, votes and text
	// responses in one transaction.
	Delete(ctx context.Context, id uint) error
	GetOptions(ctx context.Context, pollID uint) ([]poll.Option, error)
	AddOptions(ctx context.Context, options []poll.Option) error
	// RemoveOptions deletes the given options and their votes.
	RemoveOptions(ctx context.Context, pollID uint, optionIDs []uint) error
	// ClearVotes deletes all votes for the poll and zeroes option counters.
	ClearVotes(ctx context.Context, pollID uint) error
}

type VoteRepository interface {
	GetOption(ctx context.Context, pollID, optionID uint) (poll.Option, error)
	HasVoted(ctx context.Context, pollID uint, username string) (bool, error)
	// Cast inserts the vote and increments the option counter atomically.
	Cast(ctx context.Context, v *poll.Vote) error
	ListByPoll(ctx context.Context, pollID uint) ([]VoteRecord, error)
	ListAll(ctx context.Context) ([]VoteRecord, error)
	CountByPoll(ctx context.Context, pollID uint) (int64, error)
}

type TextResponseRepository interface {
	Create(ctx context.Context, r *poll.TextResponse) error
	// ListByPoll returns responses ordered by creation time ascending.
	ListByPoll(ctx context.Context, pollID uint) ([]poll.TextResponse, error)
	CountByPoll(ctx context.Context, pollID uint) (int64, error)
}
