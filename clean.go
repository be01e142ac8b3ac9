package mathml

import (
	"strings"
	"unicode"
)

var currencySymbols = map[string]bool{"$": true, "¢": true, "£": true, "¥": true, "€": true, "₹": true}

// clean normalizes the tree before canonicalization. It returns nil when the node should be removed,
// parent and pos tell where the node sits.
func (c *Canonicalizer) clean(n, parent *Node, pos int) *Node {
	required := parent != nil && parent.Kind.IsFixedArity()

	if n.Kind.IsToken() {
		return c.cleanToken(n, required)
	}

	switch n.Kind {
	case AnnotationKind, AnnotationXMLKind:
		return n
	case SpaceKind:
		if !required && IsNegligibleWidth(n.Attr("width")) {
			return nil
		}

		return makeEmpty(n)
	case PhantomKind, AlignMarkKind, AlignGroupKind:
		if required {
			return makeEmpty(n)
		}

		return nil
	case FencedKind:
		return c.clean(fromFenced(n), parent, pos)
	case StyleKind, PaddedKind:
		return c.clean(liftWrapper(n), parent, pos)
	case SemanticsKind:
		return c.cleanSemantics(n)
	}

	if n.Kind.IsEmpty() {
		return n
	}

	if n.Kind.IsInferredRow() && len(n.Children) > 1 {
		n.Children = []*Node{newAddedRow(n.Children...)}
	}

	children := make([]*Node, 0, len(n.Children))
	for i, child := range n.Children {
		if out := c.clean(child, n, i); out != nil {
			children = append(children, out)
		}
	}

	if n.Kind == RowKind {
		children = mergeDots(children)
		children = c.mergeNumberBlocks(children, parent, pos)
		children = mergeWhitespace(children)
	}

	n.Children = children

	if len(children) == 0 {
		switch {
		case n.Kind == RowKind && parent != nil && parent.Kind == MultiscriptsKind:
			return &Node{Kind: NoneKind}
		case n.Kind == RowKind && required:
			return makeEmpty(n)
		case n.Kind == RowKind:
			return nil
		case n.Kind.IsInferredRow() && n.Kind != MathKind:
			n.Children = []*Node{newPlaceholder()}
		}

		return n
	}

	if n.Kind == RowKind && len(children) == 1 {
		return inheritAttrs(children[0], n.Attributes)
	}

	return n
}

func (c *Canonicalizer) cleanToken(n *Node, required bool) *Node {
	if n.Data != "" && strings.TrimFunc(n.Data, unicode.IsSpace) == "" && (n.Kind == TextKind || n.Kind == OperatorKind) {
		n.Kind = TextKind
		if strings.Trim(n.Data, nbsp) != "" {
			n.Data = nbsp
		}

		return n
	}

	text := trimXMLSpace(n.Data)
	if text == "" {
		if required {
			return makeEmpty(n)
		}

		tracer().Debugf("removing empty %s", n.Kind)
		return nil
	}

	n.Data = text

	switch n.Kind {
	case NumberKind:
		return splitNegative(n)
	case IdentifierKind, TextKind:
		n.Data = dashes(text)
		if _, ok := LookupOperator(n.Data); ok && !c.isIdentifierText(n.Data) {
			n.Kind = OperatorKind
		}
	case OperatorKind:
		if c.isIdentifierText(text) {
			n.Kind = IdentifierKind
		}
	}

	return n
}

// isIdentifierText is true for text which is written as mo but behaves like an operand
func (c *Canonicalizer) isIdentifierText(text string) bool {
	return c.defs.FunctionNames.Has(text) ||
		c.defs.GeometryShapes.Has(text) ||
		currencySymbols[text] ||
		text == "…" || text == "⋯"
}

// splitNegative turns -5 into a row of prefix minus and 5
func splitNegative(mn *Node) *Node {
	var rest string
	switch {
	case strings.HasPrefix(mn.Data, "-"):
		rest = mn.Data[len("-"):]
	case strings.HasPrefix(mn.Data, "−"):
		rest = mn.Data[len("−"):]
	default:
		return mn
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		mn.Kind = OperatorKind
		mn.Data = "-"
		return mn
	}

	mn.Data = rest
	return newAddedRow(NewToken(OperatorKind, "-"), mn)
}

// fromFenced expands mfenced into a row with explicit fences and separators
func fromFenced(n *Node) *Node {
	open, close, separators := "(", ")", ","
	if v, ok := n.Attributes["open"]; ok {
		open = trimXMLSpace(v)
	}

	if v, ok := n.Attributes["close"]; ok {
		close = trimXMLSpace(v)
	}

	if v, ok := n.Attributes["separators"]; ok {
		separators = v
	}

	var seps []string
	for _, r := range separators {
		if !unicode.IsSpace(r) {
			seps = append(seps, string(r))
		}
	}

	fence := func(text string) *Node {
		mo := NewToken(OperatorKind, text)
		mo.SetAttr(ChangedAttr, changedFromMfenced)
		return mo
	}

	row := addAttrs(&Node{Kind: RowKind, Attributes: copyAttrs(n.Attributes)}, nil)
	if open != "" {
		row.Children = append(row.Children, fence(open))
	}

	for i, child := range n.Children {
		if i > 0 && len(seps) > 0 {
			row.Children = append(row.Children, fence(seps[min(i-1, len(seps)-1)]))
		}

		row.Children = append(row.Children, child)
	}

	if close != "" {
		row.Children = append(row.Children, fence(close))
	}

	return row
}

// liftWrapper replaces mstyle or mpadded by its only child, a wrapper of several children becomes a row
func liftWrapper(n *Node) *Node {
	if len(n.Children) == 1 {
		return inheritAttrs(n.Children[0], n.Attributes)
	}

	n.Kind = RowKind
	return addAttrs(n, nil)
}

// inheritAttrs copies global attributes of a removed wrapper to node, own attributes of the node win
func inheritAttrs(node *Node, attrs map[string]string) *Node {
	for key, value := range attrs {
		if !isGlobalAttribute(key) || node.HasAttr(key) {
			continue
		}

		if key == ChangedAttr && value == changedAdded {
			continue
		}

		node.SetAttr(key, value)
	}

	return node
}

// cleanSemantics cleans the presentation child and moves it to the front, annotations stay as they are
func (c *Canonicalizer) cleanSemantics(n *Node) *Node {
	for i, child := range n.Children {
		if child.Kind == AnnotationKind || child.Kind == AnnotationXMLKind {
			continue
		}

		out := c.clean(child, n, i)
		if out == nil {
			out = newPlaceholder()
		}

		children := []*Node{out}
		children = append(children, n.Children[:i]...)
		n.Children = append(children, n.Children[i+1:]...)
		return n
	}

	return n
}

// mergeDots replaces three dot operators in a row by an ellipsis
func mergeDots(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for i := 0; i < len(children); i++ {
		if i+2 < len(children) && children[i].Is(OperatorKind, ".") && children[i+1].Is(OperatorKind, ".") && children[i+2].Is(OperatorKind, ".") {
			dots := children[i]
			dots.Kind = IdentifierKind
			dots.Data = "…"
			out = append(out, dots)
			i += 2
			continue
		}

		out = append(out, children[i])
	}

	return out
}

// isWhitespaceText is true for mtext holding a single space with nothing attached to it
func isWhitespaceText(node *Node) bool {
	return node.Kind == TextKind && node.Data == nbsp && len(node.Attributes) == 0
}

// mergeWhitespace attaches whitespace text to neighbouring tokens
func mergeWhitespace(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for i := 0; i < len(children); i++ {
		child := children[i]
		if !isWhitespaceText(child) {
			out = append(out, child)
			continue
		}

		var next *Node
		if i+1 < len(children) {
			next = children[i+1]
		}

		switch {
		case next != nil && next.Kind == TextKind && !isPlaceholder(next):
			if next.Data != nbsp {
				next.Data = nbsp + next.Data
			}
		case len(out) > 0 && isTextLeaf(out[len(out)-1]) && !isPlaceholder(out[len(out)-1]):
			out[len(out)-1].Data += nbsp
		case next != nil && (next.Kind == IdentifierKind || next.Kind == NumberKind):
			next.Data = nbsp + next.Data
		default:
			out = append(out, child)
		}
	}

	return out
}

// isPlaceholder is true for text standing for removed or missing content
func isPlaceholder(node *Node) bool {
	return node.Attr(ChangedAttr) == changedEmptyContent || node.HasAttr(AddedAttr)
}

func isTextLeaf(node *Node) bool {
	return node.Kind == IdentifierKind || node.Kind == NumberKind || node.Kind == TextKind
}

// isDigits is true for mn made of ASCII digits only
func isDigits(node *Node) bool {
	if node.Kind != NumberKind || node.Data == "" {
		return false
	}

	for _, r := range node.Data {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// separatorOf returns the digit block separator node stands for or empty string
func (c *Canonicalizer) separatorOf(node *Node) string {
	if node.Is(OperatorKind, c.block) {
		return c.block
	}

	if isWhitespaceText(node) {
		return nbsp
	}

	return ""
}

// mergeNumberBlocks joins numbers split into digit blocks, like 8,123,456 or 12 345.5, into one mn
func (c *Canonicalizer) mergeNumberBlocks(children []*Node, parent *Node, pos int) []*Node {
	for i := 0; i < len(children); i++ {
		// .5
		if c.decimal == "." && children[i].Is(OperatorKind, c.decimal) && i+1 < len(children) && isDigits(children[i+1]) &&
			(i == 0 || children[i-1].Kind == OperatorKind) {
			children = mergeRun(children, i, i+2)
			continue
		}

		if !isDigits(children[i]) {
			continue
		}

		end, sep := c.numberRun(children, i)
		if end == i+1 {
			continue
		}

		if !c.isLikelyNumber(children, i, end, sep, parent, pos) {
			tracer().Debugf("digit blocks starting at %s are not a number", summary(children[i]))
			i = end - 1
			continue
		}

		children = mergeRun(children, i, end)
	}

	return children
}

// numberRun finds the end of digit blocks starting at start, optionally followed by a fraction part
func (c *Canonicalizer) numberRun(children []*Node, start int) (int, string) {
	end, block, sep := start+1, 0, ""
	for end+1 < len(children) {
		text := c.separatorOf(children[end])
		next := children[end+1]
		if text == "" || (sep != "" && text != sep) || !isDigits(next) {
			break
		}

		size := len(next.Data)
		if block == 0 && (size < 3 || size > 5 || size < len(children[start].Data)) {
			break
		}

		if block != 0 && size != block {
			break
		}

		block, sep = size, text
		end += 2
	}

	if end+1 < len(children) && children[end].Is(OperatorKind, c.decimal) && isDigits(children[end+1]) {
		end += 2
	}

	return end, sep
}

// isLikelyNumber refuses digit blocks which look like a list: 1,23,456 or (451,231)
func (c *Canonicalizer) isLikelyNumber(children []*Node, start, end int, sep string, parent *Node, pos int) bool {
	if sep == c.block {
		if start > 0 && children[start-1].Is(OperatorKind, sep) {
			return false
		}

		if end < len(children) && children[end].Is(OperatorKind, sep) {
			return false
		}
	}

	commas := false
	for _, child := range children[start:end] {
		if child.Is(OperatorKind, ",") {
			commas = true
		}
	}

	if !commas {
		return true
	}

	var before, after *Node
	switch {
	case start > 0 && end < len(children):
		before, after = children[start-1], children[end]
	case start == 0 && end == len(children) && parent != nil && pos > 0 && pos+1 < len(parent.Children):
		before, after = parent.Children[pos-1], parent.Children[pos+1]
	default:
		return true
	}

	return !(isFenceOperator(before) && isFenceOperator(after))
}

// mergeRun replaces children[start:end] by a single mn holding their text
func mergeRun(children []*Node, start, end int) []*Node {
	var text strings.Builder
	for _, child := range children[start:end] {
		text.WriteString(child.Data)
	}

	mn := children[start]
	mn.Kind = NumberKind
	mn.Data = text.String()

	return append(children[:start+1], children[end:]...)
}
