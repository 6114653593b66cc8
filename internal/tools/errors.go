package tools

import "fmt"

// ParameterConflictError reports two parameters with the same name but
// different placements on one operation. The affected descriptor cannot
// be built; other operations are unaffected.
type ParameterConflictError struct {
	Operation string
	Param     string
}

func (e *ParameterConflictError) Error() string {
	return fmt.Sprintf("operation %q: parameter %q declared with conflicting placements", e.Operation, e.Param)
}

// DuplicateDescriptorError reports a registry insert with an already
// registered name.
type DuplicateDescriptorError struct {
	Name string
}

func (e *DuplicateDescriptorError) Error() string {
	return fmt.Sprintf("duplicate tool descriptor %q", e.Name)
}
