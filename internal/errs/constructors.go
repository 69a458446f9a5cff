package errs

import "errors"

// NewNotFoundError reports a missing record. code overrides the default "NOT_FOUND".
func NewNotFoundError(message string, override bool, code *string) *Error {
	formattedCode := MakeUpperCaseWithUnderscores("not found")
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:     KindNotFound,
		Code:     formattedCode,
		Message:  message,
		Override: override,
	}
}

// NewInvalidError reports input the store rejected. code overrides the default "INVALID".
func NewInvalidError(message string, override bool, code *string, fieldErrors []FieldError) *Error {
	formattedCode := MakeUpperCaseWithUnderscores("invalid")
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:     KindInvalid,
		Code:     formattedCode,
		Message:  message,
		Override: override,
		Errors:   fieldErrors,
	}
}

// NewInternalError hides the underlying failure behind a generic message.
func NewInternalError() *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    MakeUpperCaseWithUnderscores("internal error"),
		Message: "Internal error",
	}
}

// IsNotFound reports whether err is a not-found *Error.
func IsNotFound(err error) bool {
	return errors.Is(err, &Error{Kind: KindNotFound})
}
