package poll

import "time"

// Poll types supported by the service.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTextResponse   = "text_response"
)

// Default display labels for newly created polls.
const (
	DefaultOpensLabel  = "Opens today"
	DefaultClosesLabel = "Closes in 3 days"
)

// ValidType reports whether t is one of the known poll types.
func ValidType(t string) bool {
	return t == TypeMultipleChoice || t == TypeTextResponse
}

// Poll represents polls
type Poll struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	PollType    string `gorm:"not null;default:multiple_choice"`
	OpensLabel  string
	ClosesLabel string
	CreatedAt   time.Time
	Options     []Option `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

// Option represents options
type Option struct {
	ID     uint   `gorm:"primaryKey"`
	PollID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`
	Votes  int64  `gorm:"not null;default:0"`
}

// Vote represents votes. The unique index on (poll_id, username) makes the
// one-vote-per-user-per-poll invariant a storage-level guarantee.
type Vote struct {
	ID        uint   `gorm:"primaryKey"`
	PollID    uint   `gorm:"not null;uniqueIndex:idx_votes_poll_user"`
	OptionID  uint   `gorm:"not null;index"`
	Username  string `gorm:"not null;uniqueIndex:idx_votes_poll_user"`
	CreatedAt time.Time
}

// TextResponse represents text_responses
type TextResponse struct {
	ID           uint   `gorm:"primaryKey"`
	PollID       uint   `gorm:"not null;uniqueIndex:idx_responses_poll_user"`
	Username     string `gorm:"not null;uniqueIndex:idx_responses_poll_user"`
	ResponseText string `gorm:"not null"`
	CreatedAt    time.Time
}

func (Poll) TableName() string {
	return "polls"
}

func (Option) TableName() string {
	return "options"
}

func (Vote) TableName() string {
	return "votes"
}

func (TextResponse) TableName() string {
	return "text_responses"
}
