package handler

import (
	"net/http"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// VoteHandler handles the public submission and retrieval endpoints.
type VoteHandler struct {
	admission *services.AdmissionService
	polls     *services.PollService
}

func NewVoteHandler(admission *services.AdmissionService, polls *services.PollService) *VoteHandler {
	return &VoteHandler{admission: admission, polls: polls}
}

// Vote casts a student's single vote on a poll.
func (h *VoteHandler) Vote(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	var req httpdto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	if err := h.admission.SubmitVote(c.Request.Context(), services.SubmitVoteInput{
		PollID:   id,
		OptionID: req.OptionID,
		Username: req.Username,
	}); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.StatusResponse{Status: "ok"})
}

// ListVotes returns a poll's votes annotated with option details.
func (h *VoteHandler) ListVotes(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	records, err := h.polls.Votes(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	votes := make([]httpdto.VoteDTO, 0, len(records))
	for _, rec := range records {
		votes = append(votes, httpdto.VoteDTO{
			Username:   rec.Username,
			OptionID:   rec.OptionID,
			OptionName: rec.OptionName,
		})
	}

	c.JSON(http.StatusOK, httpdto.PollVotesResponse{PollID: id, Votes: votes})
}

// SubmitTextResponse records a student's free-text answer.
func (h *VoteHandler) SubmitTextResponse(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	var req httpdto.TextResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	if err := h.admission.SubmitTextResponse(c.Request.Context(), services.SubmitTextResponseInput{
		PollID:       id,
		Username:     req.Username,
		ResponseText: req.ResponseText,
	}); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.StatusResponse{Status: "ok"})
}

// ListTextResponses returns a poll's free-text answers in submission order.
func (h *VoteHandler) ListTextResponses(c *gin.Context) {
	id, ok := pollIDParam(c)
	if !ok {
		return
	}

	responses, err := h.polls.TextResponses(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	dtos := make([]httpdto.TextResponseDTO, 0, len(responses))
	for _, r := range responses {
		dtos = append(dtos, httpdto.TextResponseDTO{
			ID:           r.ID,
			PollID:       r.PollID,
			Username:     r.Username,
			ResponseText: r.ResponseText,
			CreatedAt:    r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, httpdto.TextResponsesResponse{PollID: id, Responses: dtos})
}
