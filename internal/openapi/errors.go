package openapi

import "fmt"

// MalformedSpecError reports a path entry that cannot be turned into an
// Operation. The rest of the document still loads; Load collects these
// on Document.Skipped.
type MalformedSpecError struct {
	Path   string
	Method string
	Reason string
}

func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed spec entry %s %s: %s", e.Method, e.Path, e.Reason)
}

// DuplicateOperationError reports two path entries resolving to the same
// operation name. Name collisions are global, so this fails the whole load.
type DuplicateOperationError struct {
	Name string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("duplicate operation name %q", e.Name)
}
