package httpdto

// SignupRequest is used for POST /signup. Fields carry no `required` binding
// on purpose: empty strings fall through to the validation chain in the auth
// service so the client gets the specific message instead of a generic bind
// error.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse is returned after successful signup. The password hash is
// never part of a response.
type SignupResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LoginRequest is used for POST /login. Empty credentials fail the lookup or
// the password check and get the same "invalid credentials" answer as any
// other bad pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
