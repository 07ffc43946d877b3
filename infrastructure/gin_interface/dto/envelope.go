package dto

// SuccessEnvelope wraps every successful API payload.
type SuccessEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ErrorEnvelope is the uniform error body; Message is always client-safe.
type ErrorEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func NewSuccessEnvelope(data interface{}) SuccessEnvelope {
	return SuccessEnvelope{Status: "success", Data: data}
}

func NewErrorEnvelope(statusCode int, message string) ErrorEnvelope {
	return ErrorEnvelope{Status: "error", StatusCode: statusCode, Message: message}
}
