package mathml

// Validate checks that the tree is structurally valid MathML: known elements and the right number of children
func Validate(node *Node) error {
	switch {
	case !node.Kind.IsKnown():
		return structureError(node, "unknown element")
	case node.Kind == AnnotationKind || node.Kind == AnnotationXMLKind:
		return nil
	case node.Kind.IsToken():
		if len(node.Children) != 0 {
			return structureError(node, "token element %s should contain text only", node.Kind)
		}

		return nil
	case node.Kind.IsEmpty():
		if len(node.Children) != 0 || trimXMLSpace(node.Data) != "" {
			return structureError(node, "element %s should be empty", node.Kind)
		}

		return nil
	case node.Kind == SemanticsKind:
		if len(node.Children) == 0 {
			return structureError(node, "semantics should have a presentation child")
		}

		for _, child := range node.Children {
			if child.Kind != AnnotationKind && child.Kind != AnnotationXMLKind {
				return Validate(child)
			}
		}

		return nil
	}

	if trimXMLSpace(node.Data) != "" {
		return structureError(node, "element %s should not contain text", node.Kind)
	}

	if err := validateArity(node); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := Validate(child); err != nil {
			return err
		}
	}

	return nil
}

func validateArity(node *Node) error {
	n := len(node.Children)

	if arity := node.Kind.Arity(); arity > 0 && n != arity {
		return structureError(node, "%s should have %d children, it has %d", node.Kind, arity, n)
	}

	switch node.Kind {
	case MultiscriptsKind:
		if n == 0 {
			return structureError(node, "mmultiscripts should have a base")
		}

		prescripts := false
		for _, child := range node.Children[1:] {
			if child.Kind == PrescriptsKind {
				if prescripts {
					return structureError(node, "mmultiscripts has more than one mprescripts")
				}

				prescripts = true
			}
		}

		// base, pairs of postscripts, optionally mprescripts and pairs of prescripts
		scripts := n - 1
		if prescripts {
			scripts--
		}

		if scripts%2 != 0 {
			return structureError(node, "mmultiscripts should have pairs of scripts, it has %d scripts", scripts)
		}
	case LongDivKind:
		if n < 3 {
			return structureError(node, "mlongdiv should have at least 3 children, it has %d", n)
		}
	}

	return nil
}
