package response

// Response is the envelope every API route returns.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Fields     interface{} `json:"fields,omitempty"` // field-level validation errors
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps a message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithFields attaches a field-level error list to an error envelope,
// used for validation failures.
func ErrorWithFields(statusCode int, err string, fields interface{}) Response {
	r := Error(statusCode, err)
	r.Fields = fields
	return r
}
