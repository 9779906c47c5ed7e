package store

// Code classifies a business-rule failure. Storage failures never appear
// here: the facade recovers them below this layer.
type Code string

const (
	CodeDuplicateEmail     Code = "DuplicateEmail"
	CodeNotEditable        Code = "NotEditable"
	CodeIllegalTransition  Code = "IllegalTransition"
	CodeNotFound           Code = "NotFound"
	CodeInvalidCredentials Code = "InvalidCredentials"
	CodeInvalidInput       Code = "InvalidInput"
)

// Result is the outcome of a store action. Business-rule violations are
// returned, never thrown: callers render Message directly.
type Result struct {
	Success bool   `json:"success"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message"`
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(code Code, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}
