package dto

// Envelope is the common response shape. Error carries a stable code.
type Envelope struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK is the body of a successful response without payload.
func OK() Envelope {
	return Envelope{Success: true}
}

// Fail is the body of a failed response.
func Fail(code string) Envelope {
	return Envelope{Error: code}
}
