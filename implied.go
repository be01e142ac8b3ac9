package mathml

import (
	"strings"
	"unicode/utf8"
)

// rowContext tells where the row being canonicalized sits in its parent
type rowContext struct {
	parent Kind
	index  int
}

// inScript is true for rows which are scripts (not the base) of msub, msup or msubsup
func (r rowContext) inScript() bool {
	return r.parent.IsScript() && r.index > 0
}

// impliedOperator chooses an invisible operator to put between previous and current operands.
// row holds the row children starting from current.
func (c *Canonicalizer) impliedOperator(s *parseStack, certainty Certainty, previous *Node, row []*Node, ctx rowContext) OperatorPair {
	current := row[0]

	if certainty == Certain {
		return OperatorPair{Text: FunctionApplicationChar, Info: functionApplication}
	}

	if c.isMixedFraction(previous, row) {
		return OperatorPair{Text: InvisiblePlusChar, Info: impliedPlus}
	}

	if ctx.inScript() && previous.Kind == NumberKind && current.Kind == NumberKind {
		return OperatorPair{Text: InvisibleSeparatorChar, Info: impliedSeparator}
	}

	top := s.top()
	if isChemicalBond(previous, current, top.row.Children[:len(top.row.Children)-1], row[1:]) {
		return OperatorPair{Text: InvisibleSeparatorChar, Info: chemicalBond}
	}

	if isPointName(previous) && isPointName(current) {
		return OperatorPair{Text: InvisibleSeparatorChar, Info: impliedSeparatorHigh}
	}

	if c.isTrigArgument(s, previous, current) {
		return OperatorPair{Text: InvisibleTimesChar, Info: impliedTimesHigh}
	}

	return OperatorPair{Text: InvisibleTimesChar, Info: impliedTimes}
}

// isMixedFraction detects 2¾ written as a number followed by an integer fraction
func (c *Canonicalizer) isMixedFraction(integer *Node, fraction []*Node) bool {
	if len(fraction) == 0 {
		return false
	}

	right := fraction[0]
	switch {
	case right.Kind == FractionKind:
	case right.Kind == RowKind && len(right.Children) == 3:
	case right.Kind == NumberKind && len(fraction) >= 3:
	default:
		return false
	}

	if !c.isIntegerPart(integer) {
		return false
	}

	if right.Kind == FractionKind {
		return isInteger(right.Children[0], c.decimal) && isInteger(right.Children[1], c.decimal)
	}

	return c.isLinearFraction(fraction)
}

func (c *Canonicalizer) isIntegerPart(node *Node) bool {
	if node.Kind == RowKind && len(node.Children) == 2 && node.Children[0].Is(OperatorKind, "-") {
		return isInteger(node.Children[1], c.decimal)
	}

	return isInteger(node, c.decimal)
}

// isLinearFraction checks for "3/4" either as three siblings or as a row
func (c *Canonicalizer) isLinearFraction(nodes []*Node) bool {
	if nodes[0].Kind == RowKind {
		return c.isLinearFraction(nodes[0].Children)
	}

	return len(nodes) >= 3 &&
		isInteger(nodes[0], c.decimal) &&
		nodes[1].Is(OperatorKind, "/") &&
		isInteger(nodes[2], c.decimal)
}

// isChemicalBond checks that both operands and everything around them within the row is chemistry
func isChemicalBond(previous, current *Node, before, after []*Node) bool {
	if !previous.HasAttr(MaybeChemistry) || !current.HasAttr(MaybeChemistry) {
		return false
	}

	for _, nodes := range [][]*Node{before, after} {
		for _, node := range nodes {
			if !isChemistry(node) {
				return false
			}
		}
	}

	return true
}

func isChemistry(node *Node) bool {
	base := embellishedBase(node)
	if base.HasAttr(MaybeChemistry) {
		return true
	}

	return base.Kind != IdentifierKind && base.Kind != TextKind
}

// isPointName is true for single capital latin letter, like points in ∠ABC
func isPointName(node *Node) bool {
	if node.Kind != IdentifierKind {
		return false
	}

	text := strings.TrimSpace(node.Data)
	if utf8.RuneCountInString(text) != 1 || len(text) != 1 {
		return false
	}

	return 'A' <= text[0] && text[0] <= 'Z'
}

// isTrigArgument is true when current continues argument of a trigonometric function, like x in sin 2x
func (c *Canonicalizer) isTrigArgument(s *parseStack, previous, current *Node) bool {
	if !isSimple(current) {
		return false
	}

	if isBracketed(previous, "(", ")") || isBracketed(previous, "[", "]") {
		return false
	}

	// "cos" in "sin x cos y" starts a new product
	if c.functionName(current, nil) == Certain {
		return false
	}

	top := s.top()
	switch top.op.Info.Identity {
	case FunctionApplication:
		return c.isTrig(top.row.Children[0])
	case PrefixMinus:
		if len(s.frames) < 2 {
			return false
		}

		below := s.frames[len(s.frames)-2]
		if below.op.Info.Identity != FunctionApplication || !c.isTrig(below.row.Children[0]) {
			return false
		}

		// sin -2x: the minus applies to the whole product
		s.reduceOnce()
		return true
	default:
		return top.op.Info.Identity == ImpliedTimesHigh
	}
}

// isSimple is true for leaves, negative numbers and leaves with leaf scripts
func isSimple(node *Node) bool {
	switch {
	case node.Kind == IdentifierKind || node.Kind == NumberKind || node.Kind == TextKind:
		return true
	case node.Kind == RowKind:
		return len(node.Children) == 2 && node.Children[0].Is(OperatorKind, "-") && node.Children[1].Kind == NumberKind
	case node.Kind.IsScript():
		for _, child := range node.Children {
			if child.Kind != IdentifierKind && child.Kind != NumberKind {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// isBracketed checks if node is a row enclosed in open and close
func isBracketed(node *Node, open, close string) bool {
	if node.Kind != RowKind || len(node.Children) < 2 {
		return false
	}

	return node.Children[0].Is(OperatorKind, open) && node.Children[len(node.Children)-1].Is(OperatorKind, close)
}
