package mathml

import (
	"sync"

	"github.com/pkg/errors"
)

type Option func(*Canonicalizer)

// WithDefinitions replaces built-in function and shape names
func WithDefinitions(defs *Definitions) Option {
	return func(c *Canonicalizer) {
		if defs != nil {
			c.defs = defs
		}
	}
}

// WithDecimalSeparator sets decimal separator, either "." (default) or ",".
// The other one is used to separate digit blocks.
func WithDecimalSeparator(sep string) Option {
	return func(c *Canonicalizer) {
		if sep == "," {
			c.decimal, c.block = ",", "."
		} else {
			c.decimal, c.block = ".", ","
		}
	}
}

// Canonicalizer turns flat MathML rows into rows nested according to operator priorities.
// It's safe for concurrent use.
type Canonicalizer struct {
	defs    *Definitions
	decimal string
	block   string
}

func NewCanonicalizer(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{defs: DefaultDefinitions(), decimal: ".", block: ","}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCanonicalizer = sync.OnceValue(func() *Canonicalizer {
	return NewCanonicalizer()
})

// Canonicalize canonicalizes node with default settings
func Canonicalize(node *Node) (*Node, error) {
	return defaultCanonicalizer().Canonicalize(node)
}

// Canonicalize returns canonical copy of node, node itself is not modified
func (c *Canonicalizer) Canonicalize(node *Node) (*Node, error) {
	if node == nil {
		return nil, errors.New("nothing to canonicalize")
	}

	root := node.Clone()
	if root.Kind != MathKind {
		root = &Node{Kind: MathKind, Attributes: map[string]string{ChangedAttr: changedAdded}, Children: []*Node{root}}
	}

	if err := Validate(root); err != nil {
		return nil, errors.Wrap(err, "invalid mathml")
	}

	tracer().Debugf("canonicalizing %s", summary(root))

	root = c.clean(root, nil, 0)
	if len(root.Children) == 0 {
		root.Children = []*Node{newPlaceholder()}
	}

	out, err := c.canonicalize(root, rowContext{})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to canonicalize %s", summary(root))
	}

	return out, nil
}

func (c *Canonicalizer) canonicalize(node *Node, ctx rowContext) (*Node, error) {
	switch node.Kind {
	case UnknownKind:
		return nil, structureError(node, "unknown element")
	case OperatorKind:
		node.Data = operatorText(node.Data, ctx)
		return node, nil
	case RowKind:
		return c.canonicalizeRow(node, ctx)
	case AnnotationKind, AnnotationXMLKind:
		return node, nil
	case SemanticsKind:
		if len(node.Children) == 0 {
			return node, nil
		}

		child, err := c.canonicalize(node.Children[0], rowContext{parent: SemanticsKind})
		if err != nil {
			return nil, err
		}

		node.Children[0] = child
		return node, nil
	}

	if node.Kind.IsToken() || node.Kind.IsEmpty() {
		return node, nil
	}

	for i, child := range node.Children {
		out, err := c.canonicalize(child, rowContext{parent: node.Kind, index: i})
		if err != nil {
			return nil, err
		}

		node.Children[i] = out
	}

	return node, nil
}

// canonicalizeRow groups children of the row by operator priority
func (c *Canonicalizer) canonicalizeRow(row *Node, ctx rowContext) (*Node, error) {
	saved := copyAttrs(row.Attributes)
	children := row.Children
	s := newParseStack()

	for i := range children {
		current, err := c.canonicalize(children[i], rowContext{parent: RowKind, index: i})
		if err != nil {
			return nil, err
		}

		children[i] = current
		base := embellishedBase(current)

		var next, afterNext *Node
		if i+1 < len(children) {
			next = children[i+1]
		}

		if i+2 < len(children) {
			afterNext = children[i+2]
		}

		var op OperatorPair
		top := s.top()

		if base.Kind == OperatorKind && !isBlank(base.Data) {
			var previous *OperatorInfo
			if !top.operand {
				previous = &top.op.Info
			}

			text := trimXMLSpace(base.Data)
			info := c.findOperator(base, previous, top.lastChild(), next)
			info = c.verticalBarOperator(info, base, next, afterNext, s, countTokens(children[i+1:], text))
			op = OperatorPair{Text: text, Info: info}
		} else if last := top.lastChild(); last != nil && embellishedBase(last).Kind != OperatorKind {
			certainty := c.functionName(last, children[i:])
			op = c.impliedOperator(s, certainty, last, children[i:], ctx)

			if base.Kind == OperatorKind {
				// whitespace between operands plays the role of the invisible operator
				op.Text = base.Data
			} else {
				tracer().Debugf("adding %U after %s (function: %s)", []rune(op.Text)[0], summary(last), certainty)

				s.reduce(op.Info.Priority)

				mo := newAddedOperator(op.Text)
				if certainty == Maybe {
					mo.SetAttr(FunctionGuessAttr, "true")
				}

				c.shift(s, mo, op)
				s.top().add(mo, op)
				op = OperatorPair{}
			}
		}

		if op.IsOperator() {
			if op.Info.IsLeftFence() || op.Info.IsPrefix() {
				if s.top().operand {
					c.addImpliedBeforeGroup(s, children[i-1], children[i:])
				}

				s.push(newFrame())
			} else {
				// 2 3/4 is read as 2+(3/4)
				if op.Text == "/" && s.top().op.Info.Identity == ImpliedPlus {
					op.Info = impliedPlusSlash
				}

				s.reduce(op.Info.Priority)
				current, op = c.shift(s, current, op)
			}
		}

		s.top().add(current, op)
	}

	s.reduce(fencepost.Priority)
	for len(s.frames) > 1 {
		tracer().Errorf("unbalanced stack at the end of %s", summary(row))
		s.reduceOnce()
	}

	result := s.top().row
	if len(result.Children) == 1 {
		result = result.Children[0]
	}

	if result.Attr(ChangedAttr) == changedAdded {
		result.RemoveAttr(ChangedAttr)
	}

	return addAttrs(result, saved), nil
}

// addImpliedBeforeGroup puts function application or multiplication between an operand and a following group
func (c *Canonicalizer) addImpliedBeforeGroup(s *parseStack, previous *Node, row []*Node) {
	certainty := c.functionName(previous, row)

	op := OperatorPair{Text: InvisibleTimesChar, Info: impliedTimes}
	if certainty == Certain {
		op = OperatorPair{Text: FunctionApplicationChar, Info: functionApplication}
	}

	mo := newAddedOperator(op.Text)
	if certainty == Maybe {
		mo.SetAttr(FunctionGuessAttr, "true")
	}

	c.shift(s, mo, op)
	s.top().add(mo, op)
}

// shift makes room for the operator on the stack. It returns node and operator to be added to the top frame,
// for closing fences and postfix operators it's the completed group and no operator.
func (c *Canonicalizer) shift(s *parseStack, current *Node, op OperatorPair) (*Node, OperatorPair) {
	if op.continues(s.top().op) {
		return current, op
	}

	top := s.pop()

	switch {
	case len(top.row.Children) == 0 || (!top.operand && !op.Info.IsRightFence()):
		// no operand on the left, start a new row with the operator
		s.push(top)
		s.push(newFrame())
		return current, op
	case op.Info.IsRightFence():
		top.add(current, op)

		row := top.row
		children := row.Children
		switch {
		case len(children) == 2 && !isOpening(children[0]):
			// the row wasn't pushed by an opening fence, keep the stack balanced
			s.push(newFrame())
		case len(children) <= 3:
			return liftScript(row), OperatorPair{}
		default:
			tracer().Errorf("closing fence ends a row of %d children: %s", len(children), summary(row))
		}

		return row, OperatorPair{}
	case op.Info.IsPostfix():
		operand := top.removeLastOperand()
		s.push(top)

		f := newFrameWith(operand, op)
		f.add(current, op)
		return f.row, OperatorPair{}
	default:
		operand := top.removeLastOperand()
		s.push(top)
		s.push(newFrameWith(operand, op))
		return current, op
	}
}

// isOpening checks if node is an operator which can open a group
func isOpening(node *Node) bool {
	if node.Kind != OperatorKind {
		return false
	}

	entry, ok := LookupOperator(trimXMLSpace(node.Data))
	if !ok {
		return false
	}

	info, ok := entry.Find(Prefix)
	return ok && info.IsLeftFence()
}

func isFenceOperator(node *Node) bool {
	if node.Kind != OperatorKind {
		return false
	}

	entry, ok := LookupOperator(trimXMLSpace(node.Data))
	if !ok {
		return false
	}

	for _, form := range []Form{Prefix, Postfix} {
		if info, ok := entry.Find(form); ok && info.IsFence() {
			return true
		}
	}

	return false
}

// liftScript moves script of a closing fence to the whole group: ( x+1 )² becomes (x+1)²
func liftScript(row *Node) *Node {
	if row.Kind != RowKind || len(row.Children) < 2 {
		return row
	}

	first := row.Children[0]
	script := row.Children[len(row.Children)-1]
	if !isFenceOperator(first) || !script.Kind.IsScript() || len(script.Children) == 0 || !isFenceOperator(script.Children[0]) {
		return row
	}

	row.Children[len(row.Children)-1] = script.Children[0]
	script.Children[0] = row
	return script
}
