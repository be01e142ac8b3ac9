package mathml

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const nbsp = "\u00a0"

// embellishedBase returns base of scripted node (recursively) or the node itself
func embellishedBase(node *Node) *Node {
	for node.Kind.IsEmbellishing() && len(node.Children) > 0 {
		node = node.Children[0]
	}

	return node
}

// isBlank is true for text which consists of whitespace characters only, including invisible spaces
func isBlank(text string) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) && !isInvisibleSpace(r) {
			return false
		}
	}

	return true
}

func isInvisibleSpace(r rune) bool {
	switch r {
	case '\u200b', '\u2060':
		return true
	default:
		return false
	}
}

// trimXMLSpace removes whitespace the way MathML token elements do, non breaking spaces stay
func trimXMLSpace(text string) string {
	return strings.Trim(text, " \t\r\n")
}

func newAddedRow(children ...*Node) *Node {
	return &Node{Kind: RowKind, Attributes: map[string]string{ChangedAttr: changedAdded}, Children: children}
}

func newAddedOperator(text string) *Node {
	return &Node{Kind: OperatorKind, Attributes: map[string]string{ChangedAttr: changedAdded}, Data: text}
}

// newPlaceholder creates text element standing for missing content
func newPlaceholder() *Node {
	return &Node{Kind: TextKind, Data: nbsp, Attributes: map[string]string{AddedAttr: addedMissingContent}}
}

// makeEmpty turns node into an empty text element keeping its global attributes
func makeEmpty(node *Node) *Node {
	addAttrs(node, nil)
	node.Kind = TextKind
	node.Data = nbsp
	node.Children = nil
	node.SetAttr(ChangedAttr, changedEmptyContent)
	return node
}

// isInteger is true for number without a decimal separator
func isInteger(node *Node, decimal string) bool {
	return node.Kind == NumberKind && !strings.Contains(node.Data, decimal)
}

// closest returns candidate within two edits from word, empty string if there is none
func closest(word string, candidates []string) string {
	best, distance := "", 3
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(word, candidate); d < distance {
			best, distance = candidate, d
		}
	}

	return best
}
