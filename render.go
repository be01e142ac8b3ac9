package mathml

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Render writes node as compact MathML markup. Attributes are sorted, invisible characters are written as
// numeric character references so they survive copy and paste.
func Render(w io.Writer, node *Node) error {
	return render(w, node)
}

func render(w io.Writer, node *Node) error {
	switch {
	case !node.Kind.IsKnown():
		return structureError(node, "unknown element")
	case node.Kind == AnnotationKind || node.Kind == AnnotationXMLKind:
		return renderRawAndWrap(w, node)
	case node.Kind.IsToken():
		return renderTextAndWrap(w, node)
	case node.Kind.IsEmpty() && len(node.Children) == 0:
		_, err := fmt.Fprint(w, openTag(node, true))
		return err
	default:
		return renderChildrenAndWrap(w, node)
	}
}

func renderChildren(w io.Writer, node *Node) error {
	for _, child := range node.Children {
		if err := render(w, child); err != nil {
			return err
		}
	}

	return nil
}

func renderChildrenAndWrap(w io.Writer, node *Node) error {
	if _, err := fmt.Fprint(w, openTag(node, false)); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprint(w, "</", node.Kind, ">")
	return err
}

func renderTextAndWrap(w io.Writer, node *Node) error {
	_, err := fmt.Fprint(w, openTag(node, false), escape(node.Data), "</", node.Kind, ">")
	return err
}

func renderRawAndWrap(w io.Writer, node *Node) error {
	_, err := fmt.Fprint(w, openTag(node, false), node.Data, "</", node.Kind, ">")
	return err
}

func openTag(node *Node, closed bool) string {
	keys := make([]string, 0, len(node.Attributes))
	for key := range node.Attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<" + node.Kind.String())
	for _, key := range keys {
		b.WriteString(" " + key + "=\"" + escape(node.Attributes[key]) + "\"")
	}

	if closed {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
	}

	return b.String()
}

func escape(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\u00a0' || r == '\u200b' || r == '\u2060' || (r >= '\u2061' && r <= '\u2064') || (r >= '\ue000' && r <= '\uf8ff'):
			fmt.Fprintf(&b, "&#x%X;", r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Markup returns compact MathML markup of the node
func Markup(node *Node) string {
	var b strings.Builder
	if err := Render(&b, node); err != nil {
		return ""
	}

	return b.String()
}
