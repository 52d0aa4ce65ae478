package services

import (
	"context"
	"fmt"
	"strings"

	"classpoll/internal/domain/poll"
	"classpoll/internal/repository"
	poll_errors "classpoll/pkg/errors"
)

// AdmissionService is the validate-then-record step for student submissions:
// it enforces one vote or text response per (poll, username) and keeps the
// option counters in step with the vote log.
type AdmissionService struct {
	pollRepo     repository.PollRepository
	voteRepo     repository.VoteRepository
	responseRepo repository.TextResponseRepository
	publisher    ResultsPublisher
}

func NewAdmissionService(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	responseRepo repository.TextResponseRepository,
	publisher ResultsPublisher,
) *AdmissionService {
	return &AdmissionService{
		pollRepo:     pollRepo,
		voteRepo:     voteRepo,
		responseRepo: responseRepo,
		publisher:    publisher,
	}
}

type SubmitVoteInput struct {
	PollID   uint
	OptionID uint
	Username string
}

type SubmitTextResponseInput struct {
	PollID       uint
	Username     string
	ResponseText string
}

func (s *AdmissionService) SubmitVote(ctx context.Context, in SubmitVoteInput) error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return fmt.Errorf("%w: username is required", poll_errors.ErrInvalidInput)
	}
	if in.OptionID == 0 {
		return fmt.Errorf("%w: option_id is required", poll_errors.ErrInvalidInput)
	}

	if _, err := s.voteRepo.GetOption(ctx, in.PollID, in.OptionID); err != nil {
		return err
	}

	// Friendly fast path; the unique index on (poll_id, username) is what
	// actually guarantees exclusivity under concurrency.
	voted, err := s.voteRepo.HasVoted(ctx, in.PollID, username)
	if err != nil {
		return err
	}
	if voted {
		return poll_errors.ErrAlreadyVoted
	}

	if err := s.voteRepo.Cast(ctx, &poll.Vote{
		PollID:   in.PollID,
		OptionID: in.OptionID,
		Username: username,
	}); err != nil {
		return err
	}

	if s.publisher != nil {
		if options, err := s.pollRepo.GetOptions(ctx, in.PollID); err == nil {
			publishTallies(s.publisher, in.PollID, options)
		}
	}
	return nil
}

func (s *AdmissionService) SubmitTextResponse(ctx context.Context, in SubmitTextResponseInput) error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return fmt.Errorf("%w: username is required", poll_errors.ErrInvalidInput)
	}
	responseText := strings.TrimSpace(in.ResponseText)
	if responseText == "" {
		return fmt.Errorf("%w: response text is required", poll_errors.ErrInvalidInput)
	}

	p, err := s.pollRepo.GetByID(ctx, in.PollID)
	if err != nil {
		return err
	}
	if p.PollType != poll.TypeTextResponse {
		return poll_errors.ErrNotTextPoll
	}

	return s.responseRepo.Create(ctx, &poll.TextResponse{
		PollID:       in.PollID,
		Username:     username,
		ResponseText: responseText,
	})
}
