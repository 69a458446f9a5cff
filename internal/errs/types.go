package errs

import "strings"

// FieldError is a field-level problem, e.g. a NOT NULL column left empty.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Kind is the broad category of an Error.
type Kind string

const (
	KindNotFound Kind = "not_found"
	KindInvalid  Kind = "invalid"
	KindInternal Kind = "internal"
)

// Error is the application error.
//
//   - Code: machine-friendly code (e.g. "SHOPPING_LIST_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Override: the message is specific enough to show the user as-is.
//   - Errors: per-field details.
type Error struct {
	Kind     Kind         `json:"kind"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same Kind, so errors.Is(err, &Error{Kind: KindNotFound})
// works as a category check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// MakeUpperCaseWithUnderscores converts "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
