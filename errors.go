package mathml

import (
	"fmt"
)

// StructureError reports MathML which can't be canonicalized: unknown elements, wrong number of children etc.
type StructureError struct {
	Node   *Node
	Reason string
}

func (e *StructureError) Error() string {
	if e.Node == nil {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Reason, summary(e.Node))
}

func structureError(node *Node, format string, args ...any) error {
	return &StructureError{Node: node, Reason: fmt.Sprintf(format, args...)}
}
