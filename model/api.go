package model

type ErrorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

type ProductWrittenResponse struct {
	Published bool `json:"published"`
}
