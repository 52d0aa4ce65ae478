package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"classpoll/internal/domain/poll"
	poll_errors "classpoll/pkg/errors"
)

// MemoryStore is an in-memory implementation of the repository interfaces.
// It backs the service and handler tests and mirrors the Postgres behavior:
// monotonic ids, (poll, username) uniqueness, transactional-style cascades.
type MemoryStore struct {
	mu          sync.Mutex
	polls       map[uint]poll.Poll
	options     map[uint]poll.Option
	votes       map[uint]poll.Vote
	responses   map[uint]poll.TextResponse
	pollSeq     uint
	optionSeq   uint
	voteSeq     uint
	responseSeq uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		polls:     make(map[uint]poll.Poll),
		options:   make(map[uint]poll.Option),
		votes:     make(map[uint]poll.Vote),
		responses: make(map[uint]poll.TextResponse),
	}
}

func (s *MemoryStore) Polls() PollRepository                 { return &memoryPollRepository{s} }
func (s *MemoryStore) Votes() VoteRepository                 { return &memoryVoteRepository{s} }
func (s *MemoryStore) TextResponses() TextResponseRepository { return &memoryTextResponseRepository{s} }

type memoryPollRepository struct{ s *MemoryStore }

func (r *memoryPollRepository) Create(_ context.Context, p *poll.Poll, options []poll.Option) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.pollSeq++
	p.ID = r.s.pollSeq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	stored := *p
	stored.Options = nil
	r.s.polls[p.ID] = stored

	for i := range options {
		r.s.optionSeq++
		options[i].ID = r.s.optionSeq
		options[i].PollID = p.ID
		r.s.options[options[i].ID] = options[i]
	}
	return nil
}

func (r *memoryPollRepository) GetByID(_ context.Context, id uint) (poll.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.polls[id]
	if !ok {
		return poll.Poll{}, poll_errors.ErrNotFound
	}
	p.Options = r.s.optionsForPoll(id)
	return p, nil
}

func (r *memoryPollRepository) List(_ context.Context) ([]poll.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	polls := make([]poll.Poll, 0, len(r.s.polls))
	for _, p := range r.s.polls {
		p.Options = r.s.optionsForPoll(p.ID)
		polls = append(polls, p)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].ID < polls[j].ID })
	return polls, nil
}

func (r *memoryPollRepository) Update(_ context.Context, p poll.Poll) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.polls[p.ID]
	if !ok {
		return poll_errors.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.PollType = p.PollType
	r.s.polls[p.ID] = stored
	return nil
}

func (r *memoryPollRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.polls[id]; !ok {
		return poll_errors.ErrNotFound
	}
	delete(r.s.polls, id)
	for oid, o := range r.s.options {
		if o.PollID == id {
			delete(r.s.options, oid)
		}
	}
	for vid, v := range r.s.votes {
		if v.PollID == id {
			delete(r.s.votes, vid)
		}
	}
	for rid, tr := range r.s.responses {
		if tr.PollID == id {
			delete(r.s.responses, rid)
		}
	}
	return nil
}

func (r *memoryPollRepository) GetOptions(_ context.Context, pollID uint) ([]poll.Option, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.optionsForPoll(pollID), nil
}

func (r *memoryPollRepository) AddOptions(_ context.Context, options []poll.Option) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range options {
		r.s.optionSeq++
		options[i].ID = r.s.optionSeq
		r.s.options[options[i].ID] = options[i]
	}
	return nil
}

func (r *memoryPollRepository) RemoveOptions(_ context.Context, pollID uint, optionIDs []uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	removed := make(map[uint]bool, len(optionIDs))
	for _, id := range optionIDs {
		if o, ok := r.s.options[id]; ok && o.PollID == pollID {
			delete(r.s.options, id)
			removed[id] = true
		}
	}
	for vid, v := range r.s.votes {
		if v.PollID == pollID && removed[v.OptionID] {
			delete(r.s.votes, vid)
		}
	}
	return nil
}

func (r *memoryPollRepository) ClearVotes(_ context.Context, pollID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for vid, v := range r.s.votes {
		if v.PollID == pollID {
			delete(r.s.votes, vid)
		}
	}
	for oid, o := range r.s.options {
		if o.PollID == pollID {
			o.Votes = 0
			r.s.options[oid] = o
		}
	}
	return nil
}

type memoryVoteRepository struct{ s *MemoryStore }

func (r *memoryVoteRepository) GetOption(_ context.Context, pollID, optionID uint) (poll.Option, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.options[optionID]
	if !ok || o.PollID != pollID {
		return poll.Option{}, poll_errors.ErrNotFound
	}
	return o, nil
}

func (r *memoryVoteRepository) HasVoted(_ context.Context, pollID uint, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, v := range r.s.votes {
		if v.PollID == pollID && v.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryVoteRepository) Cast(_ context.Context, v *poll.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.votes {
		if existing.PollID == v.PollID && existing.Username == v.Username {
			return poll_errors.ErrAlreadyVoted
		}
	}
	r.s.voteSeq++
	v.ID = r.s.voteSeq
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.s.votes[v.ID] = *v

	o := r.s.options[v.OptionID]
	o.Votes++
	r.s.options[v.OptionID] = o
	return nil
}

func (r *memoryVoteRepository) ListByPoll(_ context.Context, pollID uint) ([]VoteRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []VoteRecord
	for _, v := range r.s.votes {
		if v.PollID == pollID {
			records = append(records, r.s.record(v))
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].VoteID < records[j].VoteID })
	return records, nil
}

func (r *memoryVoteRepository) ListAll(_ context.Context) ([]VoteRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := make([]VoteRecord, 0, len(r.s.votes))
	for _, v := range r.s.votes {
		records = append(records, r.s.record(v))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].VoteID < records[j].VoteID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *memoryVoteRepository) CountByPoll(_ context.Context, pollID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, v := range r.s.votes {
		if v.PollID == pollID {
			count++
		}
	}
	return count, nil
}

type memoryTextResponseRepository struct{ s *MemoryStore }

func (r *memoryTextResponseRepository) Create(_ context.Context, tr *poll.TextResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.responses {
		if existing.PollID == tr.PollID && existing.Username == tr.Username {
			return poll_errors.ErrAlreadyResponded
		}
	}
	r.s.responseSeq++
	tr.ID = r.s.responseSeq
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now()
	}
	r.s.responses[tr.ID] = *tr
	return nil
}

func (r *memoryTextResponseRepository) ListByPoll(_ context.Context, pollID uint) ([]poll.TextResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var responses []poll.TextResponse
	for _, tr := range r.s.responses {
		if tr.PollID == pollID {
			responses = append(responses, tr)
		}
	}
	sort.Slice(responses, func(i, j int) bool {
		if responses[i].CreatedAt.Equal(responses[j].CreatedAt) {
			return responses[i].ID < responses[j].ID
		}
		return responses[i].CreatedAt.Before(responses[j].CreatedAt)
	})
	return responses, nil
}

func (r *memoryTextResponseRepository) CountByPoll(_ context.Context, pollID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, tr := range r.s.responses {
		if tr.PollID == pollID {
			count++
		}
	}
	return count, nil
}

// optionsForPoll returns the poll's options in insertion order. Callers must
// hold s.mu.
func (s *MemoryStore) optionsForPoll(pollID uint) []poll.Option {
	var options []poll.Option
	for _, o := range s.options {
		if o.PollID == pollID {
			options = append(options, o)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options
}

func (s *MemoryStore) record(v poll.Vote) VoteRecord {
	rec := VoteRecord{
		VoteID:    v.ID,
		PollID:    v.PollID,
		Username:  v.Username,
		OptionID:  v.OptionID,
		CreatedAt: v.CreatedAt,
	}
	if p, ok := s.polls[v.PollID]; ok {
		rec.PollTitle = p.Title
	}
	if o, ok := s.options[v.OptionID]; ok {
		rec.OptionName = o.Name
	}
	return rec
}
