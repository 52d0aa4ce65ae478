package httpdto

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PollType    string   `json:"poll_type"`
	Options     []string `json:"options"`
}

type UpdatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PollType    string   `json:"poll_type"`
	Options     []string `json:"options"`
}

type OptionDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
}

type PollDTO struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PollType    string      `json:"poll_type"`
	OpensLabel  string      `json:"opensLabel"`
	ClosesLabel string      `json:"closesLabel"`
	Options     []OptionDTO `json:"options"`
}

type PollsResponse struct {
	Polls []PollDTO `json:"polls"`
}

type CreatePollResponse struct {
	ID uint `json:"id"`
}

type UpdatePollResponse struct {
	Status string `json:"status"`
	ID     uint   `json:"id"`
}
