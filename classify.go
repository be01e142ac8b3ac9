package mathml

import (
	"strings"
)

// findOperator resolves the reading of mo at its position in a row. previous is the operator
// preceding mo when there is no operand in between.
func (c *Canonicalizer) findOperator(mo *Node, previous *OperatorInfo, previousNode, next *Node) OperatorInfo {
	form, explicit := parseForm(strings.ToLower(strings.TrimSpace(mo.Attr("form"))))
	if !explicit {
		form = c.formFromPosition(previous, previousNode, next)
	}

	if mo.HasAttr(ChemicalBondAttr) {
		if explicit && form != Infix {
			return defaultOperator(form)
		}

		return chemicalBond
	}

	entry, ok := LookupOperator(trimXMLSpace(mo.Data))
	if !ok {
		return defaultOperator(form)
	}

	if info, ok := entry.Find(form); ok {
		return info
	}

	if explicit {
		return defaultOperator(form)
	}

	return entry.First()
}

// formFromPosition decides if an operator is prefix, infix or postfix by looking at its neighbours
func (c *Canonicalizer) formFromPosition(previous *OperatorInfo, previousNode, next *Node) Form {
	// "sin - cos" is a difference of functions
	if next != nil && c.functionName(embellishedBase(next), nil) == Certain {
		return Infix
	}

	// a trailing operator has nothing to apply to, "sin -" stays a malformed difference
	if next != nil && previousNode != nil && c.functionName(embellishedBase(previousNode), nil) == Certain {
		return Prefix
	}

	operandOnLeft := previous == nil || previous.IsPostfix()
	operandOnRight := next != nil && embellishedBase(next).Kind != OperatorKind

	switch {
	case operandOnLeft && operandOnRight:
		return Infix
	case operandOnRight:
		return Prefix
	case operandOnLeft:
		return Postfix
	default:
		return Infix
	}
}

// verticalBarOperator picks between opening, closing and infix reading of "|" and alike.
// remaining is number of the same tokens in the row after the current one.
func (c *Canonicalizer) verticalBarOperator(op OperatorInfo, mo *Node, next, afterNext *Node, s *parseStack, remaining int) OperatorInfo {
	text := trimXMLSpace(mo.Data)
	if !isAmbiguousFence(text) {
		return op
	}

	entry, _ := LookupOperator(text)
	prefix, infix, postfix := entry.Versions()

	top := s.top()
	if prefix != nil && (len(top.row.Children) == 0 || !top.operand) {
		tracer().Debugf("%q opens a group", text)
		return *prefix
	}

	opened := func(f *frame) bool {
		return prefix != nil && f.op.Text == text && f.op.Info == *prefix
	}

	hasLeftMatch := opened(top) || len(s.frames) > 2 && opened(s.frames[len(s.frames)-2])
	if postfix != nil && (next == nil || hasLeftMatch) {
		tracer().Debugf("%q closes a group", text)
		return *postfix
	}

	if next == nil {
		if infix != nil {
			return *infix
		}

		return entry.First()
	}

	if prefix != nil && remaining%2 == 1 {
		tracer().Debugf("%q opens a group, %d more to the right", text, remaining)
		return *prefix
	}

	base := embellishedBase(next)
	if base.Kind == OperatorKind {
		nextOp := c.findOperator(base, infix, top.lastChild(), afterNext)
		if !nextOp.IsLeftFence() && !nextOp.IsPrefix() {
			if postfix != nil {
				return *postfix
			}
		} else if infix != nil {
			return *infix
		}
	} else if infix != nil {
		return *infix
	}

	return entry.First()
}

// countTokens counts operators with a given text
func countTokens(nodes []*Node, text string) (n int) {
	for _, node := range nodes {
		if node.Kind == OperatorKind && trimXMLSpace(node.Data) == text {
			n++
		}
	}

	return
}
