package mathml_test

import (
	"strings"
	"testing"

	"github.com/eolymp/go-mathml"
)

func TestDefaultDefinitions(t *testing.T) {
	defs := mathml.DefaultDefinitions()

	tt := []struct {
		name string
		set  mathml.NameSet
		item string
	}{
		{name: "function", set: defs.FunctionNames, item: "log"},
		{name: "trigonometric function", set: defs.TrigFunctionNames, item: "sin"},
		{name: "likely function", set: defs.LikelyFunctionNames, item: "f"},
		{name: "geometry shape", set: defs.GeometryShapes, item: "△"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.set.Has(tc.item) {
				t.Errorf("Expected %q among built-in names", tc.item)
			}
		})
	}

	if defs != mathml.DefaultDefinitions() {
		t.Error("Built-in definitions must be loaded once")
	}
}

func TestLoadDefinitions(t *testing.T) {
	defs, err := mathml.LoadDefinitions(strings.NewReader("function_names: [foo, bar]\ngeometry_shapes: [□]\n"))
	if err != nil {
		t.Fatal(err)
	}

	if !defs.FunctionNames.Has("bar") || !defs.GeometryShapes.Has("□") {
		t.Errorf("Names are not loaded: %+v", defs)
	}

	if defs.TrigFunctionNames == nil || defs.TrigFunctionNames.Has("sin") {
		t.Errorf("Missing lists must stay empty, got %v", defs.TrigFunctionNames)
	}
}

func TestLoadDefinitions_Errors(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "unknown list", input: "functions: [foo]\n"},
		{name: "not a list", input: "function_names: foo\n"},
		{name: "broken yaml", input: "function_names: [foo\n"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := mathml.LoadDefinitions(strings.NewReader(tc.input)); err == nil {
				t.Error("LoadDefinitions must fail")
			}
		})
	}
}

func TestLoadDefinitions_Empty(t *testing.T) {
	defs, err := mathml.LoadDefinitions(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if defs.FunctionNames.Has("sin") {
		t.Error("Empty document must not define names")
	}
}
