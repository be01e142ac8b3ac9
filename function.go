package mathml

import (
	"strconv"
	"strings"
	"unicode"
)

// Certainty tells how sure we are that an identifier names a function
type Certainty int

const (
	NotFunction Certainty = iota
	Maybe
	Certain
)

func (c Certainty) String() string {
	switch c {
	case Certain:
		return "true"
	case Maybe:
		return "maybe"
	default:
		return "false"
	}
}

// functionName classifies node as a function name, right holds siblings following the node.
// With no siblings only known names are recognized.
func (c *Canonicalizer) functionName(node *Node, right []*Node) Certainty {
	base := embellishedBase(node)
	if base.Kind != IdentifierKind && base.Kind != TextKind {
		return NotFunction
	}

	name := strings.TrimSpace(base.Data)
	if name == "" {
		return NotFunction
	}

	if c.defs.FunctionNames.Has(strings.ToLower(name)) || c.defs.GeometryShapes.Has(name) {
		return Certain
	}

	if len(right) == 0 {
		return NotFunction
	}

	first := right[0]
	if state := chemicalState(node, first); state != Certain {
		return state
	}

	// argument has been already grouped: f(x) where (x) is an mrow
	if first.Kind == RowKind && len(first.Children) > 0 && isOpenParen(first.Children[0]) {
		return c.functionName(node, first.Children)
	}

	if len(right) < 2 || !isOpenParen(first) {
		return NotFunction
	}

	if c.defs.LikelyFunctionNames.Has(name) {
		return Certain
	}

	open := trimXMLSpace(first.Data)
	if isSingleArgument(open, right[1:]) || isArgumentList(open, right[1:]) {
		return Certain
	}

	if node.HasAttr(MaybeChemistry) && right[1].HasAttr(MaybeChemistry) {
		return NotFunction
	}

	if runes := []rune(name); len(runes) > 1 && unicode.IsUpper(runes[0]) {
		return Certain
	}

	return Maybe
}

// chemicalState returns NotFunction or Maybe when node looks like a chemical element followed by its state, like Cl(g)
func chemicalState(node, right *Node) Certainty {
	likelihood, ok := chemistryLikelihood(node)
	if !ok {
		return Certain
	}

	if right.Kind == RowKind {
		if state, ok := chemistryLikelihood(right); ok && state > 0 {
			if likelihood+state > 2 {
				return NotFunction
			}

			return Maybe
		}
	}

	return Certain
}

func chemistryLikelihood(node *Node) (int, bool) {
	value, ok := node.Attributes[MaybeChemistry]
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}

	return n, true
}

func isOpenParen(node *Node) bool {
	return node.Is(OperatorKind, "(") || node.Is(OperatorKind, "[")
}

func isClosing(open string, node *Node) bool {
	switch open {
	case "(":
		return node.Is(OperatorKind, ")")
	case "[":
		return node.Is(OperatorKind, "]")
	default:
		return false
	}
}

// isSingleArgument checks content after an opening paren: (), (x) or (x) with x not being a row
func isSingleArgument(open string, following []*Node) bool {
	if len(following) == 0 {
		return true
	}

	if isClosing(open, following[0]) {
		return true
	}

	return len(following) > 1 && following[0].Kind != RowKind && isClosing(open, following[1])
}

// isArgumentList checks if there is a comma before the closing paren
func isArgumentList(open string, following []*Node) bool {
	if len(following) < 2 {
		return false
	}

	if following[0].Kind == RowKind {
		return isArgumentList(open, following[0].Children)
	}

	for _, node := range following {
		if isClosing(open, node) {
			return false
		}

		if node.Is(OperatorKind, ",") {
			return true
		}
	}

	return false
}

// isTrig checks if node is a trigonometric function like sin or cosh
func (c *Canonicalizer) isTrig(node *Node) bool {
	base := embellishedBase(node)
	if base.Kind != IdentifierKind && base.Kind != TextKind {
		return false
	}

	return c.defs.TrigFunctionNames.Has(strings.ToLower(strings.TrimSpace(base.Data)))
}
