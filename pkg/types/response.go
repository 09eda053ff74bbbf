package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ActionResult is returned by mutations so a front end can flash the message
// and follow the redirect.
type ActionResult struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Data       any    `json:"data,omitempty"`
}
