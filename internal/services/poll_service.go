package services

import (
	"context"
	"fmt"
	"strings"

	"classpoll/internal/domain/poll"
	"classpoll/internal/repository"
	poll_errors "classpoll/pkg/errors"
)

type PollService struct {
	pollRepo     repository.PollRepository
	voteRepo     repository.VoteRepository
	responseRepo repository.TextResponseRepository
	publisher    ResultsPublisher
}

func NewPollService(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	responseRepo repository.TextResponseRepository,
	publisher ResultsPublisher,
) *PollService {
	return &PollService{
		pollRepo:     pollRepo,
		voteRepo:     voteRepo,
		responseRepo: responseRepo,
		publisher:    publisher,
	}
}

type CreatePollInput struct {
	Title       string
	Description string
	PollType    string
	Options     []string
}

type UpdatePollInput struct {
	Title       string
	Description string
	PollType    string
	Options     []string
}

func (s *PollService) Create(ctx context.Context, in CreatePollInput) (uint, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", poll_errors.ErrInvalidInput)
	}

	pollType := strings.TrimSpace(in.PollType)
	if pollType == "" {
		pollType = poll.TypeMultipleChoice
	}
	if !poll.ValidType(pollType) {
		return 0, fmt.Errorf("%w: invalid poll type", poll_errors.ErrInvalidInput)
	}

	names := sanitizeOptionNames(in.Options)
	if pollType == poll.TypeMultipleChoice && len(names) < 2 {
		return 0, fmt.Errorf("%w: multiple choice polls require at least two options", poll_errors.ErrInvalidInput)
	}

	newPoll := &poll.Poll{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		PollType:    pollType,
		OpensLabel:  poll.DefaultOpensLabel,
		ClosesLabel: poll.DefaultClosesLabel,
	}

	var options []poll.Option
	if pollType == poll.TypeMultipleChoice {
		options = make([]poll.Option, 0, len(names))
		for _, name := range names {
			options = append(options, poll.Option{Name: name, Votes: 0})
		}
	}

	if err := s.pollRepo.Create(ctx, newPoll, options); err != nil {
		return 0, err
	}
	return newPoll.ID, nil
}

// Update writes the poll's scalar fields and, for multiple choice polls with
// a non-empty options list, diffs the supplied names against the existing
// option set: unchanged options keep their ids and vote counts, removed ones
// are deleted together with their votes, new names start at zero. An empty
// options list leaves the option set untouched.
func (s *PollService) Update(ctx context.Context, id uint, in UpdatePollInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", poll_errors.ErrInvalidInput)
	}

	pollType := strings.TrimSpace(in.PollType)
	if pollType == "" {
		pollType = poll.TypeMultipleChoice
	}
	if !poll.ValidType(pollType) {
		return fmt.Errorf("%w: invalid poll type", poll_errors.ErrInvalidInput)
	}

	existing, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if pollType != existing.PollType {
		if err := s.ensureNoSubmissions(ctx, id); err != nil {
			return err
		}
	}

	if err := s.pollRepo.Update(ctx, poll.Poll{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		PollType:    pollType,
	}); err != nil {
		return err
	}

	names := sanitizeOptionNames(in.Options)
	if pollType == poll.TypeMultipleChoice && len(names) > 0 {
		if err := s.reconcileOptions(ctx, id, names); err != nil {
			return err
		}
	}

	if s.publisher != nil {
		if options, err := s.pollRepo.GetOptions(ctx, id); err == nil {
			publishTallies(s.publisher, id, options)
		}
	}
	return nil
}

func (s *PollService) Delete(ctx context.Context, id uint) error {
	if err := s.pollRepo.Delete(ctx, id); err != nil {
		return err
	}
	publishDeleted(s.publisher, id)
	return nil
}

func (s *PollService) ClearVotes(ctx context.Context, id uint) error {
	if _, err := s.pollRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.pollRepo.ClearVotes(ctx, id); err != nil {
		return err
	}
	if s.publisher != nil {
		if options, err := s.pollRepo.GetOptions(ctx, id); err == nil {
			publishTallies(s.publisher, id, options)
		}
	}
	return nil
}

func (s *PollService) Get(ctx context.Context, id uint) (poll.Poll, error) {
	return s.pollRepo.GetByID(ctx, id)
}

func (s *PollService) List(ctx context.Context) ([]poll.Poll, error) {
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range polls {
		if polls[i].PollType == "" {
			polls[i].PollType = poll.TypeMultipleChoice
		}
		if polls[i].OpensLabel == "" {
			polls[i].OpensLabel = poll.DefaultOpensLabel
		}
		if polls[i].ClosesLabel == "" {
			polls[i].ClosesLabel = poll.DefaultClosesLabel
		}
	}
	return polls, nil
}

func (s *PollService) Votes(ctx context.Context, pollID uint) ([]repository.VoteRecord, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}
	return s.voteRepo.ListByPoll(ctx, pollID)
}

func (s *PollService) TextResponses(ctx context.Context, pollID uint) ([]poll.TextResponse, error) {
	return s.responseRepo.ListByPoll(ctx, pollID)
}

func (s *PollService) ensureNoSubmissions(ctx context.Context, pollID uint) error {
	votes, err := s.voteRepo.CountByPoll(ctx, pollID)
	if err != nil {
		return err
	}
	responses, err := s.responseRepo.CountByPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if votes > 0 || responses > 0 {
		return poll_errors.ErrPollTypeLocked
	}
	return nil
}

func (s *PollService) reconcileOptions(ctx context.Context, pollID uint, names []string) error {
	existing, err := s.pollRepo.GetOptions(ctx, pollID)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	current := make(map[string]bool, len(existing))
	var toRemove []uint
	for _, o := range existing {
		current[o.Name] = true
		if !keep[o.Name] {
			toRemove = append(toRemove, o.ID)
		}
	}
	var toAdd []poll.Option
	for _, name := range names {
		if !current[name] {
			toAdd = append(toAdd, poll.Option{PollID: pollID, Name: name, Votes: 0})
		}
	}

	if err := s.pollRepo.RemoveOptions(ctx, pollID, toRemove); err != nil {
		return err
	}
	return s.pollRepo.AddOptions(ctx, toAdd)
}

// sanitizeOptionNames trims entries, drops empty ones and dedupes while
// preserving first-seen order.
func sanitizeOptionNames(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
