package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"classpoll/internal/repository"
	"classpoll/internal/services"
	poll_errors "classpoll/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportFixture(t *testing.T) (*repository.MemoryStore, *services.PollService, *services.ExportService) {
	t.Helper()
	store := repository.NewMemoryStore()
	polls := services.NewPollService(store.Polls(), store.Votes(), store.TextResponses(), nil)
	exports := services.NewExportService(store.Polls(), store.Votes())
	return store, polls, exports
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestPollVotesExport(t *testing.T) {
	store, polls, exports := newExportFixture(t)
	ctx := context.Background()

	p := createChoicePoll(t, polls, "Pizza", "Sushi")
	castVote(t, store, p.ID, p.Options[0].ID, "alice")
	castVote(t, store, p.ID, p.Options[0].ID, "bob")
	castVote(t, store, p.ID, p.Options[1].ID, "carol")

	export, err := exports.PollVotes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "poll_1_Lunch_votes.csv", export.Filename)

	rows := parseCSV(t, export.Data)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Poll ID", "Poll Title", "Username", "Voted For", "Vote Timestamp"}, rows[0])
	assert.Equal(t, []string{"1", "Lunch", "alice", "Pizza"}, rows[1][:4])
	assert.Equal(t, "bob", rows[2][2])
	assert.Equal(t, "Sushi", rows[3][3])
}

func TestPollVotesExportNotFound(t *testing.T) {
	_, _, exports := newExportFixture(t)

	_, err := exports.PollVotes(context.Background(), 42)
	assert.ErrorIs(t, err, poll_errors.ErrNotFound)
}

func TestPollVotesExportEmptyPoll(t *testing.T) {
	_, polls, exports := newExportFixture(t)

	p := createChoicePoll(t, polls, "Pizza", "Sushi")

	export, err := exports.PollVotes(context.Background(), p.ID)
	require.NoError(t, err)

	// Header only.
	rows := parseCSV(t, export.Data)
	require.Len(t, rows, 1)
}

func TestAllVotesExport(t *testing.T) {
	store, polls, exports := newExportFixture(t)

	first := createChoicePoll(t, polls, "Pizza", "Sushi")
	second := createChoicePoll(t, polls, "Cats", "Dogs")
	castVote(t, store, first.ID, first.Options[0].ID, "alice")
	castVote(t, store, second.ID, second.Options[1].ID, "alice")

	export, err := exports.AllVotes(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(export.Filename, "all_votes_"))
	assert.True(t, strings.HasSuffix(export.Filename, ".csv"))

	rows := parseCSV(t, export.Data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Vote ID", "Poll ID", "Poll Title", "Username", "Voted For", "Vote Timestamp"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Pizza", rows[1][4])
	assert.Equal(t, "Dogs", rows[2][4])
}

func TestPollsSummaryExport(t *testing.T) {
	store, polls, exports := newExportFixture(t)

	p := createChoicePoll(t, polls, "Pizza", "Sushi")
	castVote(t, store, p.ID, p.Options[0].ID, "alice")

	export, err := exports.PollsSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(export.Filename, "polls_summary_"))

	rows := parseCSV(t, export.Data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Poll ID", "Poll Title", "Description", "Option Name", "Votes", "Created At"}, rows[0])
	assert.Equal(t, "Pizza", rows[1][3])
	assert.Equal(t, "1", rows[1][4])
	assert.Equal(t, "Sushi", rows[2][3])
	assert.Equal(t, "0", rows[2][4])
}

func TestExportFilenameSanitization(t *testing.T) {
	_, polls, exports := newExportFixture(t)
	ctx := context.Background()

	id, err := polls.Create(ctx, services.CreatePollInput{
		Title:   "What's for lunch?! (vote now)",
		Options: []string{"Pizza", "Sushi"},
	})
	require.NoError(t, err)

	export, err := exports.PollVotes(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "poll_1_Whats_for_lunch_vote_now_votes.csv", export.Filename)

	long, err := polls.Create(ctx, services.CreatePollInput{
		Title:   strings.Repeat("a", 80),
		Options: []string{"Pizza", "Sushi"},
	})
	require.NoError(t, err)

	export, err = exports.PollVotes(ctx, long)
	require.NoError(t, err)
	assert.Equal(t, "poll_2_"+strings.Repeat("a", 50)+"_votes.csv", export.Filename)
}
