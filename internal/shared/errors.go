package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotLoggedIn     = fmt.Errorf("not logged in")
	ErrAlreadyLoggedIn = fmt.Errorf("a session is already active")

	// Data errors
	ErrNoPlan          = fmt.Errorf("no plan to save")
	ErrNoNutritionPlan = fmt.Errorf("no nutrition plan to save")
	ErrNothingToSave   = fmt.Errorf("nothing to save")
	ErrNoEvaluationData = fmt.Errorf("no plan or check-ins found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// UnreachableMessage is the fixed human message shown when the backend
// cannot be reached at the transport level, as opposed to the backend
// answering with an application error.
const UnreachableMessage = "Cannot connect to API server. Is it running?"

// DecodeError reports an identity token that could not be decoded.
// It blocks login only; callers treat it as "no usable identity",
// never as a crash.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("no usable identity: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RemoteError is a structured error returned by the backend with a
// non-2xx status. Message comes from the response body's "error" field
// and is surfaced to the user verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string { return e.Message }

// UnreachableError is a connection-level failure (DNS, refused,
// timeout) distinguished from an application-level RemoteError.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string { return UnreachableMessage }

func (e *UnreachableError) Unwrap() error { return e.Err }

// AuthGrantError reports a denied or failed access-credential grant.
type AuthGrantError struct {
	Err error
}

func (e *AuthGrantError) Error() string {
	return fmt.Sprintf("error getting permission: %v", e.Err)
}

func (e *AuthGrantError) Unwrap() error { return e.Err }

// StreamError is an application error delivered mid-stream by the
// analysis endpoint. It ends the stream.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string { return e.Message }

// ImportError reports a malformed local data file. Existing in-memory
// state is left untouched when one occurs.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("could not read data file: %v", e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
