package handler

import (
	"net/http"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// PollHandler handles poll management endpoints.
type PollHandler struct {
	polls *services.PollService
}

func NewPollHandler(polls *services.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

// List returns all polls with their nested options.
func (h *PollHandler) List(c *gin.Context) {
	polls, err := h.polls.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	dtos := make([]httpdto.PollDTO, 0, len(polls))
	for _, p := range polls {
		options := make([]httpdto.OptionDTO, 0, len(p.Options))
		for _, o := range p.Options {
			options = append(options, httpdto.OptionDTO{ID: o.ID, Name: o.Name, Votes: o.Votes})
		}
		dtos = append(dtos, httpdto.PollDTO{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			PollType:    p.PollType,
			OpensLabel:  p.OpensLabel,
			ClosesLabel: p.ClosesLabel,
			Options:     options,
		})
	}

	c.JSON(http.StatusOK, httpdto.PollsResponse{Polls: dtos})
}

// Create handles poll creation.
func (h *PollHandler) Create(c *gin.Context) {
	var req httpdto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	id, err := h.polls.Create(c.Request.Context(), services.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		PollType:    req.PollType,
		Options:     req.Options,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.CreatePollResponse{ID: id})
}

// Update handles poll edits, including the option-set diff.
func (h *PollHandler) Update(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	var req httpdto.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	if err := h.polls.Update(c.Request.Context(), id, services.UpdatePollInput{
		Title:       req.Title,
		Description: req.Description,
		PollType:    req.PollType,
		Options:     req.Options,
	}); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UpdatePollResponse{Status: "updated", ID: id})
}

// Delete removes a poll and everything attached to it.
func (h *PollHandler) Delete(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	if err := h.polls.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "deleted"})
}

// ClearVotes wipes a poll's votes and zeroes its counters.
func (h *PollHandler) ClearVotes(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	if err := h.polls.ClearVotes(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "ok"})
}
