package httpdto

import "time"

type VoteRequest struct {
	OptionID uint   `json:"option_id"`
	Username string `json:"username"`
}

type TextResponseRequest struct {
	Username     string `json:"username"`
	ResponseText string `json:"response_text"`
}

type VoteDTO struct {
	Username   string `json:"username"`
	OptionID   uint   `json:"optionId"`
	OptionName string `json:"optionName"`
}

type PollVotesResponse struct {
	PollID uint      `json:"pollId"`
	Votes  []VoteDTO `json:"votes"`
}

type TextResponseDTO struct {
	ID           uint      `json:"id"`
	PollID       uint      `json:"poll_id"`
	Username     string    `json:"username"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type TextResponsesResponse struct {
	PollID    uint              `json:"pollId"`
	Responses []TextResponseDTO `json:"responses"`
}
