package dto

// Envelope is the uniform body returned by every catalog endpoint. Status
// always equals the HTTP status code of the response.
type Envelope struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details"`
}
