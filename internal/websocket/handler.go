package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler upgrades live-results connections and pins each one to a single
// poll channel. The endpoint is public, like the listing it complements.
type Handler struct {
	polls *services.PollService
	hub   *Hub
}

func NewHandler(polls *services.PollService, hub *Hub) *Handler {
	return &Handler{polls: polls, hub: hub}
}

func (h *Handler) Connect(c *gin.Context) {
	pollID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id"))
		return
	}

	p, err := h.polls.Get(c.Request.Context(), uint(pollID))
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	h.hub.Subscribe(client, PollChannel(p.ID))
	go client.WriteLoop(ctx)

	// Current tallies as the opening frame so the UI never starts blank.
	results := make([]services.OptionResult, 0, len(p.Options))
	for _, o := range p.Options {
		results = append(results, services.OptionResult{ID: o.ID, Name: o.Name, Votes: o.Votes})
	}
	if snapshot, err := json.Marshal(services.ResultsEvent{
		Type:    "results",
		PollID:  p.ID,
		Options: results,
	}); err == nil {
		client.SendMessage(snapshot)
	}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}

	h.hub.Unregister(client)
}
