package mathml

import (
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// macroDepth limits expansion of user macros defined in terms of each other
const macroDepth = 16

// largeOperators take their limits below and above
var largeOperators = map[string]bool{"∑": true, "∏": true, "∐": true, "⋃": true, "⋂": true, "⋁": true, "⋀": true, "lim": true}

// Parser reads math mode TeX into a flat MathML tree, the way editors convert TeX to MathML
type Parser struct {
	tokens *Tokenizer
	defs   map[string]string
	buffer []any
	depth  int
}

// ParseTeX parses math mode TeX
func ParseTeX(r io.RuneScanner) (*Node, error) {
	return NewParser(r).Parse()
}

func NewParser(r io.RuneScanner) *Parser {
	return &Parser{tokens: NewTokenizer(r), defs: map[string]string{}}
}

// Define adds a macro, for example Define("\\R", "\\mathbb{R}"). Leading backslash may be omitted.
func (p *Parser) Define(key, val string) {
	if !strings.HasPrefix(key, "\\") {
		key = "\\" + key
	}

	p.defs[key] = val
}

func (p *Parser) Value(key string) string {
	return p.defs[key]
}

func (p *Parser) Parse() (*Node, error) {
	children, err := p.row(func(t any, err error) bool {
		return err == io.EOF
	})

	if err != nil {
		return nil, err
	}

	return NewElement(MathKind, children...), nil
}

func (p *Parser) next() (any, error) {
	if len(p.buffer) > 0 {
		t := p.buffer[len(p.buffer)-1]
		p.buffer = p.buffer[:len(p.buffer)-1]
		return t, nil
	}

	return p.tokens.Token()
}

func (p *Parser) back(t any) {
	p.buffer = append(p.buffer, t)
}

// row collects nodes displayed one next to another until stop returns true
func (p *Parser) row(stop func(any, error) bool) (children []*Node, err error) {
	for {
		t, err := p.next()
		if stop(t, err) {
			return children, nil
		}

		if err == io.EOF {
			return nil, errors.New("unexpected end of input")
		}

		if err != nil {
			return nil, err
		}

		switch t {
		case Symbol("^"), Symbol("_"), Symbol("'"), Symbol("''"), Symbol("'''"):
			var base *Node
			if len(children) > 0 {
				base = children[len(children)-1]
				children = children[:len(children)-1]
			}

			node, err := p.script(base, t.(Symbol))
			if err != nil {
				return nil, err
			}

			children = append(children, node)
			continue
		}

		node, err := p.parse(t)
		if err != nil {
			return nil, err
		}

		if node == nil {
			continue
		}

		// macros expand in place
		if node.Kind == RowKind && node.HasAttr(expandedAttr) {
			children = append(children, node.Children...)
			continue
		}

		children = append(children, node)
	}
}

// expandedAttr marks rows which are merged into the enclosing row right after parsing
const expandedAttr = "data-expanded"

func (p *Parser) parse(t any) (*Node, error) {
	switch t := t.(type) {
	case Letter:
		return NewToken(IdentifierKind, string(t)), nil
	case Number:
		return NewToken(NumberKind, string(t)), nil
	case Symbol:
		return p.symbol(string(t))
	case ParameterStart:
		children, err := p.row(func(t any, err error) bool {
			_, ok := t.(ParameterEnd)
			return ok
		})

		if err != nil {
			return nil, err
		}

		return NewElement(RowKind, children...), nil
	case ParameterEnd:
		return nil, errors.New("unexpected }")
	case OptionalStart:
		return NewToken(OperatorKind, "["), nil
	case OptionalEnd:
		return NewToken(OperatorKind, "]"), nil
	case Verbatim:
		return p.verbatim(t)
	case Command:
		return p.command(string(t))
	default:
		return nil, errors.Errorf("unexpected token %v", t)
	}
}

func (p *Parser) symbol(text string) (*Node, error) {
	switch text {
	case "&":
		return nil, errors.New("alignment & is not supported in inline formulas")
	case "#":
		return nil, errors.New("macro parameters are not supported")
	}

	text = symbol(text)
	if text == nbsp {
		return NewToken(TextKind, text), nil
	}

	return NewToken(OperatorKind, text), nil
}

func (p *Parser) verbatim(t Verbatim) (*Node, error) {
	switch t.Command {
	case "\\operatorname":
		return NewToken(IdentifierKind, strings.TrimSpace(t.Data)), nil
	case "\\textbf":
		node := NewToken(TextKind, t.Data)
		node.SetAttr("mathvariant", "bold")
		return node, nil
	case "\\textit":
		node := NewToken(TextKind, t.Data)
		node.SetAttr("mathvariant", "italic")
		return node, nil
	default:
		return NewToken(TextKind, t.Data), nil
	}
}

func (p *Parser) command(name string) (*Node, error) {
	if value, ok := p.defs[name]; ok {
		return p.expand(name, value)
	}

	if text, ok := commandOperators[name]; ok {
		return NewToken(OperatorKind, text), nil
	}

	if text, ok := commandIdentifiers[name]; ok {
		return NewToken(IdentifierKind, text), nil
	}

	if commandFunctions[name] {
		return NewToken(IdentifierKind, strings.TrimPrefix(name, "\\")), nil
	}

	if width, ok := commandSpaces[name]; ok {
		node := NewElement(SpaceKind)
		node.SetAttr("width", width)
		return node, nil
	}

	if accent, ok := commandAccents[name]; ok {
		arg, err := p.arg(name)
		if err != nil {
			return nil, err
		}

		mark := NewToken(OperatorKind, accent.mark)
		node := NewElement(accent.kind, arg, mark)
		if accent.kind == OverKind {
			node.SetAttr("accent", "true")
		} else {
			node.SetAttr("accentunder", "true")
		}

		return node, nil
	}

	if variant, ok := commandVariants[name]; ok {
		arg, err := p.arg(name)
		if err != nil {
			return nil, err
		}

		if arg.Kind.IsToken() {
			arg.SetAttr("mathvariant", variant)
			return arg, nil
		}

		node := NewElement(StyleKind, arg)
		node.SetAttr("mathvariant", variant)
		return node, nil
	}

	switch name {
	case "\\frac", "\\dfrac", "\\tfrac", "\\cfrac":
		args, err := p.args(name, 2)
		if err != nil {
			return nil, err
		}

		return NewElement(FractionKind, args...), nil
	case "\\binom":
		args, err := p.args(name, 2)
		if err != nil {
			return nil, err
		}

		frac := NewElement(FractionKind, args...)
		frac.SetAttr("linethickness", "0")
		return NewElement(RowKind, NewToken(OperatorKind, "("), frac, NewToken(OperatorKind, ")")), nil
	case "\\sqrt":
		return p.sqrt()
	case "\\left":
		return p.fenced()
	case "\\right":
		return nil, errors.New("\\right without \\left")
	case "\\overset", "\\underset", "\\stackrel":
		args, err := p.args(name, 2)
		if err != nil {
			return nil, err
		}

		if name == "\\underset" {
			return NewElement(UnderKind, args[1], args[0]), nil
		}

		return NewElement(OverKind, args[1], args[0]), nil
	case "\\boxed":
		arg, err := p.arg(name)
		if err != nil {
			return nil, err
		}

		node := NewElement(EncloseKind, arg)
		node.SetAttr("notation", "box")
		return node, nil
	case "\\phantom":
		arg, err := p.arg(name)
		if err != nil {
			return nil, err
		}

		return NewElement(PhantomKind, arg), nil
	case "\\big", "\\Big", "\\bigg", "\\Bigg", "\\bigl", "\\bigr", "\\Bigl", "\\Bigr", "\\biggl", "\\biggr",
		"\\displaystyle", "\\textstyle", "\\limits", "\\nolimits":
		return nil, nil
	case "\\\\":
		return nil, errors.New("line breaks are not supported in inline formulas")
	}

	if suggestion := closest(name, p.commands()); suggestion != "" {
		return nil, errors.Errorf("unknown command %s, did you mean %s?", name, suggestion)
	}

	return nil, errors.Errorf("unknown command %s", name)
}

// expand parses value of a user macro, the result is merged into the enclosing row
func (p *Parser) expand(name, value string) (*Node, error) {
	if p.depth >= macroDepth {
		return nil, errors.Errorf("macro %s expands too deep", name)
	}

	sub := NewParser(strings.NewReader(value))
	sub.defs = p.defs
	sub.depth = p.depth + 1

	math, err := sub.Parse()
	if err != nil {
		return nil, errors.Wrapf(err, "macro %s", name)
	}

	if len(math.Children) == 1 {
		return math.Children[0], nil
	}

	row := NewElement(RowKind, math.Children...)
	row.SetAttr(expandedAttr, "true")
	return row, nil
}

// arg reads one argument of a command: a braced group or a single token
func (p *Parser) arg(command string) (*Node, error) {
	t, err := p.next()
	if err == io.EOF {
		return nil, errors.Errorf("argument of %s is missing", command)
	}

	if err != nil {
		return nil, err
	}

	// \frac12 takes digits one by one
	if n, ok := t.(Number); ok && len(n) > 1 {
		p.back(Number(n[1:]))
		t = Number(n[:1])
	}

	node, err := p.parse(t)
	if err != nil {
		return nil, err
	}

	if node == nil {
		return nil, errors.Errorf("argument of %s is missing", command)
	}

	if node.Kind == RowKind && len(node.Children) == 1 && !node.HasAttr(expandedAttr) {
		return node.Children[0], nil
	}

	node.RemoveAttr(expandedAttr)
	return node, nil
}

func (p *Parser) args(command string, n int) ([]*Node, error) {
	var args []*Node
	for i := 0; i < n; i++ {
		arg, err := p.arg(command)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return args, nil
}

func (p *Parser) sqrt() (*Node, error) {
	t, err := p.next()
	if err != nil && err != io.EOF {
		return nil, err
	}

	if _, ok := t.(OptionalStart); !ok || err != nil {
		if err == nil {
			p.back(t)
		}

		arg, err := p.arg("\\sqrt")
		if err != nil {
			return nil, err
		}

		return NewElement(SqrtKind, arg), nil
	}

	index, err := p.row(func(t any, err error) bool {
		_, ok := t.(OptionalEnd)
		return ok
	})

	if err != nil {
		return nil, err
	}

	arg, err := p.arg("\\sqrt")
	if err != nil {
		return nil, err
	}

	return NewElement(RootKind, arg, NewElement(RowKind, index...)), nil
}

// fenced reads \left( ... \right) into a row of fences around the content
func (p *Parser) fenced() (*Node, error) {
	open, err := p.delimiter("\\left")
	if err != nil {
		return nil, err
	}

	children, err := p.row(func(t any, err error) bool {
		return t == Command("\\right")
	})

	if err != nil {
		return nil, errors.Wrap(err, "\\left is not closed")
	}

	closing, err := p.delimiter("\\right")
	if err != nil {
		return nil, err
	}

	row := NewElement(RowKind)
	if open != "" {
		row.Children = append(row.Children, NewToken(OperatorKind, open))
	}

	row.Children = append(row.Children, children...)
	if closing != "" {
		row.Children = append(row.Children, NewToken(OperatorKind, closing))
	}

	return row, nil
}

// delimiter reads a fence after \left or \right, "." stands for no fence
func (p *Parser) delimiter(command string) (string, error) {
	t, err := p.next()
	if err == io.EOF {
		return "", errors.Errorf("delimiter expected after %s", command)
	}

	if err != nil {
		return "", err
	}

	switch t := t.(type) {
	case Symbol:
		if t == "." {
			return "", nil
		}

		return string(t), nil
	case OptionalStart:
		return "[", nil
	case OptionalEnd:
		return "]", nil
	case Command:
		if text, ok := commandOperators[string(t)]; ok {
			return text, nil
		}
	}

	return "", errors.Errorf("unexpected delimiter %v after %s", t, command)
}

// script attaches sub- or superscript to base, primes are superscripts too
func (p *Parser) script(base *Node, sym Symbol) (*Node, error) {
	if base == nil {
		base = NewElement(RowKind)
	}

	var script *Node
	if sym == "^" || sym == "_" {
		arg, err := p.arg(string(sym))
		if err != nil {
			return nil, err
		}

		script = arg
	} else {
		script = NewToken(OperatorKind, symbol(string(sym)))
	}

	sub := sym == "_"
	under := largeOperators[strings.TrimSpace(base.Data)] && base.Kind.IsToken()

	switch {
	case base.Kind == SupKind && !sub && isPrime(base.Children[1]):
		// x'^2 is x^{'2}
		base.Children[1] = NewElement(RowKind, base.Children[1], script)
		return base, nil
	case (base.Kind == SubKind && !sub) || (base.Kind == SupKind && sub):
		children := []*Node{base.Children[0], base.Children[1], script}
		if sub {
			children[1], children[2] = script, base.Children[1]
		}

		return NewElement(SubSupKind, children...), nil
	case (base.Kind == UnderKind && !sub) || (base.Kind == OverKind && sub):
		if !largeOperators[strings.TrimSpace(base.Children[0].Data)] {
			break
		}

		children := []*Node{base.Children[0], base.Children[1], script}
		if sub {
			children[1], children[2] = script, base.Children[1]
		}

		return NewElement(UnderOverKind, children...), nil
	case base.Kind.IsScript() || base.Kind == UnderOverKind:
		if sub {
			return nil, errors.New("double subscript")
		}

		return nil, errors.New("double superscript")
	}

	switch {
	case under && sub:
		return NewElement(UnderKind, base, script), nil
	case under:
		return NewElement(OverKind, base, script), nil
	case sub:
		return NewElement(SubKind, base, script), nil
	default:
		return NewElement(SupKind, base, script), nil
	}
}

func isPrime(node *Node) bool {
	return node.Is(OperatorKind, "′") || node.Is(OperatorKind, "″") || node.Is(OperatorKind, "‴")
}

// commands lists all known commands, used to suggest a fix for a typo
func (p *Parser) commands() []string {
	var names []string
	for _, table := range []map[string]string{commandOperators, commandIdentifiers, commandSpaces, commandVariants, p.defs} {
		for name := range table {
			names = append(names, name)
		}
	}

	for name := range commandFunctions {
		names = append(names, name)
	}

	for name := range commandAccents {
		names = append(names, name)
	}

	names = append(names, "\\frac", "\\binom", "\\sqrt", "\\left", "\\right", "\\overset", "\\underset", "\\boxed", "\\phantom")
	sort.Strings(names)
	return names
}
