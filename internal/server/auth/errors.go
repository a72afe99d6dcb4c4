package auth

import "errors"

// Operation error kinds. Handlers map these to HTTP status codes with
// errors.Is; everything the service returns wraps exactly one of them.
var (
	// ErrUnauthenticated indicates the operation requires an identity and none was present
	ErrUnauthenticated = errors.New("not logged in")

	// ErrInvalidCredentials indicates a failed login.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect credentials")

	// ErrAlreadyExists indicates the username or email is already registered
	ErrAlreadyExists = errors.New("username or email already taken")

	// ErrInvalidInput indicates a malformed mutation payload
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced user doesn't exist
	ErrNotFound = errors.New("user not found")

	// ErrOperationFailed indicates an unexpected storage failure.
	// The internal cause is logged server-side and never surfaced to the caller.
	ErrOperationFailed = errors.New("operation failed")
)
