package httpdto

// ErrorResponse is the error shape every endpoint returns: an HTTP error
// status plus a short human-readable detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}
