package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"portalctl/internal/api"
)

// ErrUnsupportedUpdate is returned when a request carries no sub-payload that leads to a backend call.
var ErrUnsupportedUpdate = errors.New("unsupported update: request carries no recognized sub-payload")

// PartialUpdateError reports a step failure. Applied steps were written and merged before Failed broke off.
type PartialUpdateError struct {
	Ref     api.NamespaceRef
	Applied []string
	Failed  string
	Err     error
}

func (e *PartialUpdateError) Error() string {
	applied := "nothing"
	if len(e.Applied) > 0 {
		applied = strings.Join(e.Applied, ", ")
	}
	return fmt.Sprintf("update of namespace %s/%s in %s failed at %s (applied: %s): %v",
		e.Ref.App, e.Ref.Name, e.Ref.Env, e.Failed, applied, e.Err)
}

func (e *PartialUpdateError) Unwrap() error {
	return e.Err
}

// Partial reports whether some steps were applied before the failure.
func (e *PartialUpdateError) Partial() bool {
	return len(e.Applied) > 0
}

// ValidationError lists request problems found before any write was issued.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid namespace update: " + strings.Join(e.Problems, "; ")
}
