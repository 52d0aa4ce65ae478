package services

import "classpoll/internal/domain/poll"

// OptionResult is one option's tally in a live results event.
type OptionResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
}

// ResultsEvent is pushed to live subscribers of a poll whenever its tallies
// change or the poll goes away.
type ResultsEvent struct {
	Type    string         `json:"type"` // "results" or "poll_deleted"
	PollID  uint           `json:"poll_id"`
	Options []OptionResult `json:"options,omitempty"`
}

// ResultsPublisher fans a results event out to live subscribers. The
// websocket hub implements it; services treat a nil publisher as "no live
// listeners" and publishing is always fire-and-forget.
type ResultsPublisher interface {
	PublishResults(event ResultsEvent)
}

func publishTallies(p ResultsPublisher, pollID uint, options []poll.Option) {
	if p == nil {
		return
	}
	results := make([]OptionResult, 0, len(options))
	for _, o := range options {
		results = append(results, OptionResult{ID: o.ID, Name: o.Name, Votes: o.Votes})
	}
	p.PublishResults(ResultsEvent{Type: "results", PollID: pollID, Options: results})
}

func publishDeleted(p ResultsPublisher, pollID uint) {
	if p == nil {
		return
	}
	p.PublishResults(ResultsEvent{Type: "poll_deleted", PollID: pollID})
}
