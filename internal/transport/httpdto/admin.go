package httpdto

// AdminCookie carries the admin token for browser clients; API clients may
// send it as a bearer token instead.
const AdminCookie = "classpoll_admin"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

type CheckResponse struct {
	LoggedIn bool `json:"logged_in"`
}
