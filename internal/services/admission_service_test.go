package services_test

import (
	"context"
	"testing"

	"classpoll/internal/domain/poll"
	"classpoll/internal/repository"
	"classpoll/internal/services"
	poll_errors "classpoll/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmissionFixture(t *testing.T) (*services.PollService, *services.AdmissionService, *capturePublisher) {
	t.Helper()
	store := repository.NewMemoryStore()
	pub := &capturePublisher{}
	polls := services.NewPollService(store.Polls(), store.Votes(), store.TextResponses(), pub)
	admission := services.NewAdmissionService(store.Polls(), store.Votes(), store.TextResponses(), pub)
	return polls, admission, pub
}

func createChoicePoll(t *testing.T, polls *services.PollService, options ...string) poll.Poll {
	t.Helper()
	id, err := polls.Create(context.Background(), services.CreatePollInput{
		Title:   "Lunch",
		Options: options,
	})
	require.NoError(t, err)
	p, err := polls.Get(context.Background(), id)
	require.NoError(t, err)
	return p
}

func TestSubmitVote(t *testing.T) {
	polls, admission, pub := newAdmissionFixture(t)
	ctx := context.Background()

	p := createChoicePoll(t, polls, "Pizza", "Sushi")

	err := admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: p.Options[0].ID,
		Username: "alice",
	})
	require.NoError(t, err)

	after, err := polls.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.Options[0].Votes)
	assert.Equal(t, int64(0), after.Options[1].Votes)

	records, err := polls.Votes(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "Pizza", records[0].OptionName)

	// The tally push carries the fresh counts.
	require.NotEmpty(t, pub.events)
	last := pub.last()
	assert.Equal(t, "results", last.Type)
	assert.Equal(t, p.ID, last.PollID)
	require.Len(t, last.Options, 2)
	assert.Equal(t, int64(1), last.Options[0].Votes)
}

func TestSubmitVoteOncePerUsername(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	p := createChoicePoll(t, polls, "Pizza", "Sushi")

	require.NoError(t, admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: p.Options[0].ID,
		Username: "alice",
	}))

	// Same option again.
	err := admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: p.Options[0].ID,
		Username: "alice",
	})
	assert.ErrorIs(t, err, poll_errors.ErrAlreadyVoted)

	// Switching options does not help.
	err = admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: p.Options[1].ID,
		Username: "alice",
	})
	assert.ErrorIs(t, err, poll_errors.ErrAlreadyVoted)

	// Counters never moved past the first vote.
	after, err := polls.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.Options[0].Votes)
	assert.Equal(t, int64(0), after.Options[1].Votes)
}

func TestSubmitVoteSameUsernameDifferentPolls(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	first := createChoicePoll(t, polls, "Pizza", "Sushi")
	second := createChoicePoll(t, polls, "Cats", "Dogs")

	require.NoError(t, admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   first.ID,
		OptionID: first.Options[0].ID,
		Username: "alice",
	}))
	require.NoError(t, admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   second.ID,
		OptionID: second.Options[1].ID,
		Username: "alice",
	}))
}

func TestSubmitVoteValidation(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	p := createChoicePoll(t, polls, "Pizza", "Sushi")
	other := createChoicePoll(t, polls, "Cats", "Dogs")

	err := admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: p.Options[0].ID,
		Username: "   ",
	})
	assert.ErrorIs(t, err, poll_errors.ErrInvalidInput)

	err = admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		Username: "alice",
	})
	assert.ErrorIs(t, err, poll_errors.ErrInvalidInput)

	// An option id belonging to another poll is not votable here.
	err = admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   p.ID,
		OptionID: other.Options[0].ID,
		Username: "alice",
	})
	assert.ErrorIs(t, err, poll_errors.ErrNotFound)

	err = admission.SubmitVote(ctx, services.SubmitVoteInput{
		PollID:   999,
		OptionID: p.Options[0].ID,
		Username: "alice",
	})
	assert.ErrorIs(t, err, poll_errors.ErrNotFound)
}

func TestSubmitTextResponse(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	id, err := polls.Create(ctx, services.CreatePollInput{
		Title:    "Feedback",
		PollType: poll.TypeTextResponse,
	})
	require.NoError(t, err)

	require.NoError(t, admission.SubmitTextResponse(ctx, services.SubmitTextResponseInput{
		PollID:       id,
		Username:     "alice",
		ResponseText: "  more examples please  ",
	}))

	responses, err := polls.TextResponses(ctx, id)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "alice", responses[0].Username)
	assert.Equal(t, "more examples please", responses[0].ResponseText)
}

func TestSubmitTextResponseOncePerUsername(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	id, err := polls.Create(ctx, services.CreatePollInput{
		Title:    "Feedback",
		PollType: poll.TypeTextResponse,
	})
	require.NoError(t, err)

	in := services.SubmitTextResponseInput{PollID: id, Username: "alice", ResponseText: "first"}
	require.NoError(t, admission.SubmitTextResponse(ctx, in))

	in.ResponseText = "second"
	err = admission.SubmitTextResponse(ctx, in)
	assert.ErrorIs(t, err, poll_errors.ErrAlreadyResponded)

	responses, err := polls.TextResponses(ctx, id)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "first", responses[0].ResponseText)
}

func TestSubmitTextResponseValidation(t *testing.T) {
	polls, admission, _ := newAdmissionFixture(t)
	ctx := context.Background()

	choice := createChoicePoll(t, polls, "Pizza", "Sushi")

	// A multiple choice poll does not take free text.
	err := admission.SubmitTextResponse(ctx, services.SubmitTextResponseInput{
		PollID:       choice.ID,
		Username:     "alice",
		ResponseText: "pizza please",
	})
	assert.ErrorIs(t, err, poll_errors.ErrNotTextPoll)

	err = admission.SubmitTextResponse(ctx, services.SubmitTextResponseInput{
		PollID:       choice.ID,
		Username:     "",
		ResponseText: "pizza please",
	})
	assert.ErrorIs(t, err, poll_errors.ErrInvalidInput)

	err = admission.SubmitTextResponse(ctx, services.SubmitTextResponseInput{
		PollID:       choice.ID,
		Username:     "alice",
		ResponseText: "   ",
	})
	assert.ErrorIs(t, err, poll_errors.ErrInvalidInput)

	err = admission.SubmitTextResponse(ctx, services.SubmitTextResponseInput{
		PollID:       999,
		Username:     "alice",
		ResponseText: "hello",
	})
	assert.ErrorIs(t, err, poll_errors.ErrNotFound)
}
