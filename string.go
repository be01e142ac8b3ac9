package mathml

import "strings"

// String returns text of all token elements in the tree, invisible operators included
func String(node *Node) (out string) {
	if node.Kind.IsToken() {
		return node.Data
	}

	for _, child := range node.Children {
		out += String(child)
	}

	return
}

// summary is a short single line description of the node used in errors and traces
func summary(node *Node) string {
	text := strings.Join(strings.Fields(String(node)), " ")
	if r := []rune(text); len(r) > 40 {
		text = string(r[:40]) + "…"
	}

	return "<" + node.Kind.String() + "> " + text
}
