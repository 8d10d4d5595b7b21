package link

import "errors"

var (
	// ErrNotFound is returned when no link matches the given slug or id.
	ErrNotFound = errors.New("link not found")

	// ErrSlugConflict is returned when a slug is already taken. The store's
	// unique constraint is the uniqueness authority; the generator never
	// checks for collisions itself.
	ErrSlugConflict = errors.New("slug already in use")

	// ErrStoreUnavailable wraps backend failures. Callers surface it as a
	// generic error without leaking store health to visitors.
	ErrStoreUnavailable = errors.New("link store unavailable")
)

// ValidationError describes a single rejected field. It is recovered
// locally: the form stays open and the message is shown next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
