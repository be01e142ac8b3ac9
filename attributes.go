package mathml

import (
	"strings"
)

// Marker attributes added to the tree
const (
	ChangedAttr       = "data-changed"
	AddedAttr         = "data-added"
	FunctionGuessAttr = "data-function-guess"
	MaybeChemistry    = "data-maybe-chemistry"
	ChemicalBondAttr  = "data-chemical-bond"

	changedAdded        = "added"
	changedEmptyContent = "empty_content"
	changedFromMfenced  = "from_mfenced"
	addedMissingContent = "missing-content"
)

// globalAttributes are kept on an element when it takes over attributes of another one
var globalAttributes = map[string]bool{
	"class": true, "dir": true, "displaystyle": true, "id": true, "mathbackground": true,
	"mathcolor": true, "mathsize": true, "mathvariant": true, "nonce": true, "scriptlevel": true,
	"style": true, "tabindex": true, "intent": true, "arg": true,
}

func isGlobalAttribute(key string) bool {
	return globalAttributes[key] || strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "on")
}

// addAttrs drops attributes of node specific to its element and adds attrs on top
func addAttrs(node *Node, attrs map[string]string) *Node {
	for key := range node.Attributes {
		if !isGlobalAttribute(key) {
			delete(node.Attributes, key)
		}
	}

	for key, value := range attrs {
		node.SetAttr(key, value)
	}

	return node
}

func copyAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}

	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}

	return out
}

// KeyValue parses key-value parameters in this format: key=value, key=value, for example R=ℝ, C=ℂ
func KeyValue(raw string) map[string]string {
	kv := map[string]string{}

	parts := strings.Split(raw, ",")
	for _, part := range parts {
		n := strings.SplitN(part, "=", 2)

		key := strings.TrimSpace(n[0])
		if key == "" {
			continue
		}

		if len(n) == 1 {
			kv[key] = ""
			continue
		}

		kv[key] = strings.TrimSpace(n[1])
	}

	return kv
}
