package api

// The three wrappers classify a failed call by the operation that produced
// it. They all unwrap to the underlying *Error (or transport error), so
// errors.Is(err, ErrUnauthorized) works regardless of category.

// AuthError marks a failed session operation (login, register, identity).
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "auth: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// FetchError marks a failed collection read.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string { return "fetching " + e.Resource + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// WriteError marks a failed create, update or delete.
type WriteError struct {
	Resource string
	Err      error
}

func (e *WriteError) Error() string { return "writing " + e.Resource + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
