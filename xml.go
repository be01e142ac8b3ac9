package mathml

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// entities are named character references accepted in MathML on top of HTML ones
var entities = func() map[string]string {
	e := make(map[string]string, len(xml.HTMLEntity)+32)
	for k, v := range xml.HTMLEntity {
		e[k] = v
	}

	for k, v := range map[string]string{
		"ApplyFunction": FunctionApplicationChar, "af": FunctionApplicationChar,
		"InvisibleTimes": InvisibleTimesChar, "it": InvisibleTimesChar,
		"InvisibleComma": InvisibleSeparatorChar, "ic": InvisibleSeparatorChar,
		"InvisiblePlus": InvisiblePlusChar,
		"NonBreakingSpace": nbsp, "ZeroWidthSpace": "\u200b", "NoBreak": "\u2060",
		"PlusMinus": "±", "MinusPlus": "∓", "mnplus": "∓", "setminus": "∖",
		"centerdot": "·", "CenterDot": "·", "sdot": "⋅",
		"leq": "≤", "geq": "≥", "NotEqual": "≠", "infin": "∞", "Integral": "∫",
		"Sum": "∑", "PartialD": "∂", "nabla": "∇", "Element": "∈", "NotElement": "∉",
		"RightArrow": "→", "rightarrow": "→", "LeftArrow": "←", "DoubleRightArrow": "⇒",
		"OverBar": "‾", "UnderBar": "_", "VerticalBar": "∣", "DoubleVerticalBar": "∥",
		"LeftAngleBracket": "⟨", "RightAngleBracket": "⟩", "angle": "∠", "deg": "°",
	} {
		e[k] = v
	}

	return e
}()

// Read parses MathML markup. Element tags may have a namespace prefix, like m:math.
func Read(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = entities

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "unable to read mathml")
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("unable to read mathml: no root element")
	}

	return fromElement(root)
}

func ReadString(s string) (*Node, error) {
	return Read(strings.NewReader(s))
}

func fromElement(el *etree.Element) (*Node, error) {
	kind, ok := KindOf(el.Tag)
	if !ok {
		return nil, unknownElement(el.Tag)
	}

	node := &Node{Kind: kind}
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}

		node.SetAttr(a.FullKey(), a.Value)
	}

	if kind == AnnotationKind || kind == AnnotationXMLKind {
		var raw strings.Builder
		for _, t := range el.Child {
			t.WriteTo(&raw, &etree.WriteSettings{})
		}

		node.Data = raw.String()
		return node, nil
	}

	var text strings.Builder
	for _, t := range el.Child {
		switch t := t.(type) {
		case *etree.CharData:
			text.WriteString(t.Data)
		case *etree.Element:
			child, err := fromElement(t)
			if err != nil {
				return nil, err
			}

			node.Children = append(node.Children, child)
		}
	}

	if kind.IsToken() {
		node.Data = trimXMLSpace(text.String())

		// whitespace is meaningful in mtext and mo
		if node.Data == "" && text.Len() > 0 && (kind == TextKind || kind == OperatorKind) {
			node.Data = " "
		}

		return node, nil
	}

	if trimXMLSpace(text.String()) != "" {
		return nil, structureError(node, "unexpected text %q", trimXMLSpace(text.String()))
	}

	return node, nil
}

// unknownElement reports unknown tag suggesting the closest known one
func unknownElement(tag string) error {
	node := &Node{Kind: UnknownKind, Data: tag}
	if best := closest(tag, ElementNames()); best != "" {
		return structureError(node, "unknown element <%s>, did you mean <%s>?", tag, best)
	}

	return structureError(node, "unknown element <%s>", tag)
}

// Write outputs node as MathML markup, indent is the number of spaces per level, zero writes a single line
func Write(w io.Writer, node *Node, indent int) error {
	el, err := toElement(node)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.SetRoot(el)

	if indent > 0 {
		doc.Indent(indent)
	} else {
		doc.Indent(etree.NoIndent)
	}

	_, err = doc.WriteTo(w)
	return err
}

func toElement(node *Node) (*etree.Element, error) {
	if !node.Kind.IsKnown() {
		return nil, structureError(node, "unknown element")
	}

	el := etree.NewElement(node.Kind.String())

	keys := make([]string, 0, len(node.Attributes))
	for key := range node.Attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	for _, key := range keys {
		el.CreateAttr(key, node.Attributes[key])
	}

	switch {
	case node.Kind == AnnotationKind || node.Kind == AnnotationXMLKind:
		if node.Data == "" {
			return el, nil
		}

		frag := etree.NewDocument()
		frag.ReadSettings.Entity = entities
		if err := frag.ReadFromString("<annotation>" + node.Data + "</annotation>"); err != nil {
			return nil, errors.Wrap(err, "unable to write annotation")
		}

		for _, t := range append([]etree.Token(nil), frag.Root().Child...) {
			el.AddChild(t)
		}
	case node.Kind.IsToken():
		el.SetText(node.Data)
	}

	for _, child := range node.Children {
		c, err := toElement(child)
		if err != nil {
			return nil, err
		}

		el.AddChild(c)
	}

	return el, nil
}
