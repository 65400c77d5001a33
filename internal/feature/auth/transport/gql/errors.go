// Package gql はauthフィーチャーのGraphQLトランスポート層を提供します。
package gql

// Client-facing error codes surfaced in extensions.code.
const (
	CodeConflict        = "CONFLICT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
	CodeValidation      = "GRAPHQL_VALIDATION_FAILED"
)

// apiError is a client-safe error carrying a GraphQL error code.
// It implements gqlerrors.ExtendedError, so the graphql engine includes
// the code in the formatted error's extensions.
type apiError struct {
	message string
	code    string
}

func (e *apiError) Error() string {
	return e.message
}

// Extensions returns the extensions map serialized alongside the message.
func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var (
	// errConflict surfaces a duplicate registration. The message is part of
	// the public API contract.
	errConflict = &apiError{message: "User Already Exist", code: CodeConflict}

	// errUnauthorized covers every authentication failure without
	// distinguishing the cause, to prevent account enumeration.
	errUnauthorized = &apiError{message: "Unauthorized", code: CodeUnauthenticated}

	// errInternal is the only shape an unexpected error may take on the
	// wire. The underlying cause stays in the server logs.
	errInternal = &apiError{message: "Internal server error", code: CodeInternal}
)

// newValidationError builds a BAD_USER_INPUT error for a malformed input field.
func newValidationError(message string) *apiError {
	return &apiError{message: message, code: CodeBadUserInput}
}
