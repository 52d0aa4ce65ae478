package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"classpoll/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func waitForSubscribers(t *testing.T, hub *Hub, channel string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.GetChannelSubscriberCount(channel) == want
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastReachesOnlySubscribedChannel(t *testing.T) {
	hub := startHub(t)

	a := NewClient(nil)
	b := NewClient(nil)
	hub.Register(a)
	hub.Register(b)
	hub.Subscribe(a, PollChannel(1))
	hub.Subscribe(b, PollChannel(2))
	waitForSubscribers(t, hub, PollChannel(1), 1)
	waitForSubscribers(t, hub, PollChannel(2), 1)

	hub.Broadcast(PollChannel(1), []byte("tallies"))

	select {
	case msg := <-a.Send:
		assert.Equal(t, "tallies", string(msg))
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the broadcast")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("unexpected message on another poll's channel: %s", msg)
	default:
	}
}

func TestPublishResults(t *testing.T) {
	hub := startHub(t)

	c := NewClient(nil)
	hub.Register(c)
	hub.Subscribe(c, PollChannel(7))
	waitForSubscribers(t, hub, PollChannel(7), 1)

	hub.PublishResults(services.ResultsEvent{
		Type:   "results",
		PollID: 7,
		Options: []services.OptionResult{
			{ID: 1, Name: "Pizza", Votes: 3},
		},
	})

	select {
	case msg := <-c.Send:
		var event services.ResultsEvent
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, "results", event.Type)
		assert.Equal(t, uint(7), event.PollID)
		require.Len(t, event.Options, 1)
		assert.Equal(t, int64(3), event.Options[0].Votes)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the results event")
	}
}

func TestUnregisterCleansUp(t *testing.T) {
	hub := startHub(t)

	c := NewClient(nil)
	hub.Register(c)
	hub.Subscribe(c, PollChannel(1))
	waitForSubscribers(t, hub, PollChannel(1), 1)

	hub.Unregister(c)
	waitForSubscribers(t, hub, PollChannel(1), 0)
	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// Send channel is closed so the write loop would exit.
	_, open := <-c.Send
	assert.False(t, open)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := startHub(t)

	c := NewClient(nil)
	hub.Register(c)
	hub.Subscribe(c, PollChannel(1))
	waitForSubscribers(t, hub, PollChannel(1), 1)

	hub.Unsubscribe(c, PollChannel(1))
	waitForSubscribers(t, hub, PollChannel(1), 0)

	hub.Broadcast(PollChannel(1), []byte("tallies"))
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message after unsubscribe: %s", msg)
	default:
	}
}
