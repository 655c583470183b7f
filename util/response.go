package util

// ErrorResponse is the body of every 4xx/5xx reply. Error never carries
// store or driver details.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type CreatedResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type SearchResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

type ProbeResponse struct {
	Count int         `json:"count"`
	Docs  interface{} `json:"docs"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func FailedResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

func ServerErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message, Error: INTERNAL_ERROR}
}
