package mathml

import (
	"sort"
	"strings"
)

// Kind identifies MathML element
type Kind int

const (
	UnknownKind Kind = iota
	MathKind
	RowKind
	IdentifierKind
	NumberKind
	OperatorKind
	TextKind
	StringKind
	SpaceKind
	GlyphKind
	FractionKind
	SqrtKind
	RootKind
	StyleKind
	ErrorKind
	PaddedKind
	PhantomKind
	FencedKind
	EncloseKind
	SubKind
	SupKind
	SubSupKind
	UnderKind
	OverKind
	UnderOverKind
	MultiscriptsKind
	PrescriptsKind
	NoneKind
	TableKind
	TableRowKind
	LabeledRowKind
	TableCellKind
	AlignMarkKind
	AlignGroupKind
	StackKind
	LongDivKind
	StackGroupKind
	StackRowKind
	CarriesKind
	CarryKind
	StackLineKind
	SemanticsKind
	AnnotationKind
	AnnotationXMLKind
)

var kindNames = map[Kind]string{
	MathKind:          "math",
	RowKind:           "mrow",
	IdentifierKind:    "mi",
	NumberKind:        "mn",
	OperatorKind:      "mo",
	TextKind:          "mtext",
	StringKind:        "ms",
	SpaceKind:         "mspace",
	GlyphKind:         "mglyph",
	FractionKind:      "mfrac",
	SqrtKind:          "msqrt",
	RootKind:          "mroot",
	StyleKind:         "mstyle",
	ErrorKind:         "merror",
	PaddedKind:        "mpadded",
	PhantomKind:       "mphantom",
	FencedKind:        "mfenced",
	EncloseKind:       "menclose",
	SubKind:           "msub",
	SupKind:           "msup",
	SubSupKind:        "msubsup",
	UnderKind:         "munder",
	OverKind:          "mover",
	UnderOverKind:     "munderover",
	MultiscriptsKind:  "mmultiscripts",
	PrescriptsKind:    "mprescripts",
	NoneKind:          "none",
	TableKind:         "mtable",
	TableRowKind:      "mtr",
	LabeledRowKind:    "mlabeledtr",
	TableCellKind:     "mtd",
	AlignMarkKind:     "malignmark",
	AlignGroupKind:    "maligngroup",
	StackKind:         "mstack",
	LongDivKind:       "mlongdiv",
	StackGroupKind:    "msgroup",
	StackRowKind:      "msrow",
	CarriesKind:       "mscarries",
	CarryKind:         "mscarry",
	StackLineKind:     "msline",
	SemanticsKind:     "semantics",
	AnnotationKind:    "annotation",
	AnnotationXMLKind: "annotation-xml",
}

var kindsByName = func() map[string]Kind {
	kinds := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		kinds[name] = kind
	}

	return kinds
}()

// KindOf returns element kind by its tag name
func KindOf(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}

// ElementNames returns tag names of all known elements in alphabetical order
func ElementNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, name := range kindNames {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

func (k Kind) IsKnown() bool {
	_, ok := kindNames[k]
	return ok
}

// IsToken is true for elements holding text: mi, mn, mo, mtext and ms
func (k Kind) IsToken() bool {
	switch k {
	case IdentifierKind, NumberKind, OperatorKind, TextKind, StringKind:
		return true
	default:
		return false
	}
}

// IsEmpty is true for elements which never have content
func (k Kind) IsEmpty() bool {
	switch k {
	case SpaceKind, GlyphKind, NoneKind, PrescriptsKind, AlignMarkKind, AlignGroupKind, StackLineKind:
		return true
	default:
		return false
	}
}

// Arity returns number of children required by the element, zero means any number
func (k Kind) Arity() int {
	switch k {
	case FractionKind, RootKind, SubKind, SupKind, UnderKind, OverKind:
		return 2
	case SubSupKind, UnderOverKind:
		return 3
	default:
		return 0
	}
}

// IsFixedArity is true for elements where every child has a structural role
func (k Kind) IsFixedArity() bool {
	return k.Arity() > 0 || k == MultiscriptsKind || k == LongDivKind
}

// IsInferredRow is true for elements which treat several children as one implicit mrow
func (k Kind) IsInferredRow() bool {
	switch k {
	case MathKind, SqrtKind, StyleKind, ErrorKind, PaddedKind, PhantomKind, EncloseKind, TableCellKind:
		return true
	default:
		return false
	}
}

// IsScript is true for msub, msup and msubsup
func (k Kind) IsScript() bool {
	return k == SubKind || k == SupKind || k == SubSupKind
}

// IsEmbellishing is true for elements whose first child determines how the element behaves in a row
func (k Kind) IsEmbellishing() bool {
	switch k {
	case SubKind, SupKind, SubSupKind, UnderKind, OverKind, UnderOverKind, MultiscriptsKind:
		return true
	default:
		return false
	}
}

// Node is a MathML element. Token elements keep their text in Data, annotations keep raw markup there.
type Node struct {
	Kind       Kind
	Attributes map[string]string
	Data       string
	Children   []*Node
}

// NewToken creates token element with a given text
func NewToken(kind Kind, text string) *Node {
	return &Node{Kind: kind, Data: text}
}

// NewElement creates an element with given children
func NewElement(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func (n *Node) Attr(key string) string {
	return n.Attributes[key]
}

func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attributes[key]
	return ok
}

func (n *Node) SetAttr(key, value string) {
	if n.Attributes == nil {
		n.Attributes = map[string]string{}
	}

	n.Attributes[key] = value
}

func (n *Node) RemoveAttr(key string) {
	delete(n.Attributes, key)
}

// Is checks if node is a token of a given kind with a given text
func (n *Node) Is(kind Kind, text string) bool {
	return n != nil && n.Kind == kind && strings.TrimSpace(n.Data) == text
}

// Clone creates a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{Kind: n.Kind, Data: n.Data}
	if n.Attributes != nil {
		c.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			c.Attributes[k] = v
		}
	}

	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}

	return c
}
