package httpdto

// ErrorResponse is the error shape every endpoint returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// StatusResponse covers the simple {"status": ...} acknowledgements.
type StatusResponse struct {
	Status string `json:"status"`
}
