package appointment

import "fmt"

// RemoteUpdateError means local validation passed but the backend
// rejected (or never received) the mutation. The store is guaranteed
// untouched, so retrying is safe.
type RemoteUpdateError struct {
	Op  string
	ID  int
	Err error
}

func (e *RemoteUpdateError) Error() string {
	return fmt.Sprintf("%s appointment %d: %v", e.Op, e.ID, e.Err)
}

func (e *RemoteUpdateError) Unwrap() error {
	return e.Err
}
