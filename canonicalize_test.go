package mathml_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/eolymp/go-mathml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

// withoutChanged returns a copy of the tree without markers of added and changed elements
func withoutChanged(node *mathml.Node) *mathml.Node {
	node = node.Clone()

	var strip func(n *mathml.Node)
	strip = func(n *mathml.Node) {
		n.RemoveAttr(mathml.ChangedAttr)
		for _, child := range n.Children {
			strip(child)
		}
	}

	strip(node)
	return node
}

func mustRead(t *testing.T, markup string) *mathml.Node {
	t.Helper()

	node, err := mathml.ReadString(markup)
	if err != nil {
		t.Fatalf("unable to read %q: %v", markup, err)
	}

	return node
}

func TestCanonicalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, mathml.TraceKey)
	defer teardown()

	tt := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "implied multiplication binds tighter than addition",
			input:  `<math><mi>c</mi><mo>+</mo><mi>x</mi><mi>y</mi></math>`,
			output: `<math><mrow><mi>c</mi><mo>+</mo><mrow><mi>x</mi><mo>&#x2062;</mo><mi>y</mi></mrow></mrow></math>`,
		},
		{
			name:   "function applied to parenthesized argument",
			input:  `<math><mi>sin</mi><mo>(</mo><mi>x</mi><mo>)</mo></math>`,
			output: `<math><mrow><mi>sin</mi><mo>&#x2061;</mo><mrow><mo>(</mo><mi>x</mi><mo>)</mo></mrow></mrow></math>`,
		},
		{
			name:   "trigonometric argument without parens",
			input:  `<math><mi>sin</mi><mn>2</mn><mi>x</mi></math>`,
			output: `<math><mrow><mi>sin</mi><mo>&#x2061;</mo><mrow><mn>2</mn><mo>&#x2062;</mo><mi>x</mi></mrow></mrow></math>`,
		},
		{
			name:  "absolute values",
			input: `<math><mo>|</mo><mi>x</mi><mo>|</mo><mo>+</mo><mo>|</mo><mi>a</mi><mo>+</mo><mn>1</mn><mo>|</mo></math>`,
			output: `<math><mrow>
				<mrow><mo>|</mo><mi>x</mi><mo>|</mo></mrow>
				<mo>+</mo>
				<mrow><mo>|</mo><mrow><mi>a</mi><mo>+</mo><mn>1</mn></mrow><mo>|</mo></mrow>
			</mrow></math>`,
		},
		{
			name:   "digit blocks",
			input:  `<math><mn>8</mn><mo>,</mo><mn>123</mn><mo>,</mo><mn>456</mn></math>`,
			output: `<math><mn>8,123,456</mn></math>`,
		},
		{
			name:   "list in parens",
			input:  `<math><mo>(</mo><mn>451</mn><mo>,</mo><mn>231</mn><mo>)</mo></math>`,
			output: `<math><mrow><mo>(</mo><mrow><mn>451</mn><mo>,</mo><mn>231</mn></mrow><mo>)</mo></mrow></math>`,
		},
		{
			name:   "empty",
			input:  `<math></math>`,
			output: `<math><mtext data-added="missing-content">&#xA0;</mtext></math>`,
		},
		{
			name:   "likely function name",
			input:  `<math><mi>f</mi><mo>(</mo><mi>x</mi><mo>)</mo><mi>y</mi></math>`,
			output: `<math><mrow><mrow><mi>f</mi><mo>&#x2061;</mo><mrow><mo>(</mo><mi>x</mi><mo>)</mo></mrow></mrow><mo>&#x2062;</mo><mi>y</mi></mrow></math>`,
		},
		{
			name:   "mixed fraction",
			input:  `<math><mn>2</mn><mfrac><mn>3</mn><mn>4</mn></mfrac></math>`,
			output: `<math><mrow><mn>2</mn><mo>&#x2064;</mo><mfrac><mn>3</mn><mn>4</mn></mfrac></mrow></math>`,
		},
		{
			name:   "point names",
			input:  `<math><mo>∠</mo><mi>A</mi><mi>B</mi><mi>C</mi></math>`,
			output: `<math><mrow><mo>∠</mo><mrow><mi>A</mi><mo>&#x2063;</mo><mi>B</mi><mo>&#x2063;</mo><mi>C</mi></mrow></mrow></math>`,
		},
		{
			name:   "product of functions",
			input:  `<math><mi>sin</mi><mi>x</mi><mi>cos</mi><mi>y</mi></math>`,
			output: `<math><mrow><mrow><mi>sin</mi><mo>&#x2061;</mo><mi>x</mi></mrow><mo>&#x2062;</mo><mrow><mi>cos</mi><mo>&#x2061;</mo><mi>y</mi></mrow></mrow></math>`,
		},
		{
			name:   "prefix minus binds tighter than subtraction",
			input:  `<math><mo>-</mo><mi>a</mi><mo>-</mo><mi>b</mi></math>`,
			output: `<math><mrow><mrow><mo>-</mo><mi>a</mi></mrow><mo>-</mo><mi>b</mi></mrow></math>`,
		},
		{
			name:   "sum is left associative",
			input:  `<math><mi>a</mi><mo>+</mo><mi>b</mi><mo>-</mo><mi>c</mi><mo>+</mo><mi>d</mi></math>`,
			output: `<math><mrow><mi>a</mi><mo>+</mo><mi>b</mi><mo>-</mo><mi>c</mi><mo>+</mo><mi>d</mi></mrow></math>`,
		},
		{
			name:   "relation over sums",
			input:  `<math><mi>a</mi><mo>+</mo><mi>b</mi><mo>=</mo><mi>c</mi></math>`,
			output: `<math><mrow><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow><mo>=</mo><mi>c</mi></mrow></math>`,
		},
		{
			name:   "script on closing paren moves to the group",
			input:  `<math><mo>(</mo><mi>x</mi><mo>+</mo><mn>1</mn><msup><mo>)</mo><mn>2</mn></msup></math>`,
			output: `<math><msup><mrow><mo>(</mo><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow><mo>)</mo></mrow><mn>2</mn></msup></math>`,
		},
		{
			name:   "unknown operator",
			input:  `<math><mi>a</mi><mo>⨝</mo><mi>b</mi></math>`,
			output: `<math><mrow><mi>a</mi><mo>⨝</mo><mi>b</mi></mrow></math>`,
		},
		{
			name:   "chemical bond",
			input:  `<math><mi data-maybe-chemistry="1">Na</mi><mi data-maybe-chemistry="1">Cl</mi></math>`,
			output: `<math><mrow><mi data-maybe-chemistry="1">Na</mi><mo>&#x2063;</mo><mi data-maybe-chemistry="1">Cl</mi></mrow></math>`,
		},
		{
			name:  "chemical state is not an argument",
			input: `<math><mi data-maybe-chemistry="2">Cl</mi><mrow data-maybe-chemistry="1"><mo>(</mo><mi>g</mi><mo>)</mo></mrow></math>`,
			output: `<math><mrow>
				<mi data-maybe-chemistry="2">Cl</mi>
				<mo>&#x2063;</mo>
				<mrow data-maybe-chemistry="1"><mo>(</mo><mi>g</mi><mo>)</mo></mrow>
			</mrow></math>`,
		},
		{
			name:  "unlikely chemical state is a function guess",
			input: `<math><mi data-maybe-chemistry="1">Cl</mi><mrow data-maybe-chemistry="1"><mo>(</mo><mi>g</mi><mo>)</mo></mrow></math>`,
			output: `<math><mrow>
				<mi data-maybe-chemistry="1">Cl</mi>
				<mo data-function-guess="true">&#x2063;</mo>
				<mrow data-maybe-chemistry="1"><mo>(</mo><mi>g</mi><mo>)</mo></mrow>
			</mrow></math>`,
		},
		{
			name:   "explicit form found in dictionary",
			input:  `<math><mi>a</mi><mo form="prefix">-</mo><mi>b</mi></math>`,
			output: `<math><mrow><mi>a</mi><mo>&#x2062;</mo><mrow><mo form="prefix">-</mo><mi>b</mi></mrow></mrow></math>`,
		},
		{
			name:   "explicit form missing in dictionary",
			input:  `<math><mi>a</mi><mo form="infix">!</mo><mi>b</mi><mo>+</mo><mi>c</mi></math>`,
			output: `<math><mrow><mi>a</mi><mo form="infix">!</mo><mrow><mi>b</mi><mo>+</mo><mi>c</mi></mrow></mrow></math>`,
		},
		{
			name:   "difference of functions",
			input:  `<math><mi>sin</mi><mo>-</mo><mi>cos</mi></math>`,
			output: `<math><mrow><mi>sin</mi><mo>-</mo><mi>cos</mi></mrow></math>`,
		},
		{
			name:   "trailing operator after function",
			input:  `<math><mi>sin</mi><mo>-</mo></math>`,
			output: `<math><mrow><mi>sin</mi><mo>-</mo></mrow></math>`,
		},
		{
			name:  "operand between absolute values",
			input: `<math><mo>|</mo><mi>x</mi><mo>|</mo><mi>y</mi><mo>|</mo><mi>z</mi><mo>|</mo></math>`,
			output: `<math><mrow>
				<mrow><mo>|</mo><mi>x</mi><mo>|</mo></mrow>
				<mo>&#x2062;</mo>
				<mi>y</mi>
				<mo>&#x2062;</mo>
				<mrow><mo>|</mo><mi>z</mi><mo>|</mo></mrow>
			</mrow></math>`,
		},
		{
			name:  "set builder",
			input: `<math><mo>{</mo><mi>x</mi><mo>|</mo><mi>x</mi><mo>∈</mo><mi>S</mi><mo>}</mo></math>`,
			output: `<math><mrow>
				<mo>{</mo>
				<mrow><mi>x</mi><mo>|</mo><mrow><mi>x</mi><mo>∈</mo><mi>S</mi></mrow></mrow>
				<mo>}</mo>
			</mrow></math>`,
		},
		{
			name:   "digits in script are separated",
			input:  `<math><msub><mi>b</mi><mrow><mn>1</mn><mn>2</mn></mrow></msub></math>`,
			output: `<math><msub><mi>b</mi><mrow><mn>1</mn><mo>&#x2063;</mo><mn>2</mn></mrow></msub></math>`,
		},
		{
			name:   "space keeps its place",
			input:  `<math><mi>x</mi><mspace width="1em"/><mtext> </mtext><mi>y</mi></math>`,
			output: `<math><mrow><mi>x</mi><mo>&#x2062;</mo><mtext>&#xA0;</mtext><mo>&#x2062;</mo><mi>&#xA0;y</mi></mrow></math>`,
		},
		{
			name:   "rows inside scripts",
			input:  `<math><msup><mi>e</mi><mrow><mi>i</mi><mi>x</mi></mrow></msup></math>`,
			output: `<math><msup><mi>e</mi><mrow><mi>i</mi><mo>&#x2062;</mo><mi>x</mi></mrow></msup></math>`,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mathml.Canonicalize(mustRead(t, tc.input))
			if err != nil {
				t.Fatal(err)
			}

			want := mustRead(t, tc.output)
			if diff := cmp.Diff(withoutChanged(want), withoutChanged(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Canonical tree does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		`<math><mi>c</mi><mo>+</mo><mi>x</mi><mi>y</mi></math>`,
		`<math><mi>sin</mi><mo>(</mo><mi>x</mi><mo>)</mo></math>`,
		`<math><mi>sin</mi><mn>2</mn><mi>x</mi></math>`,
		`<math><mo>|</mo><mi>x</mi><mo>|</mo><mo>+</mo><mo>|</mo><mi>a</mi><mo>+</mo><mn>1</mn><mo>|</mo></math>`,
		`<math><mo>(</mo><mn>451</mn><mo>,</mo><mn>231</mn><mo>)</mo></math>`,
		`<math><mi>t</mi><mo>(</mo><mi>x</mi><mo>+</mo><mi>y</mi><mo>)</mo></math>`,
		`<math><mo>-</mo><mi>a</mi><mo>-</mo><mi>b</mi></math>`,
		`<math><mfenced><mi>a</mi><mi>b</mi></mfenced></math>`,
		`<math><mn>-5</mn><mo>+</mo><mi>x</mi></math>`,
		`<math><mi>x</mi><mtext> </mtext><mi>y</mi></math>`,
		`<math><mrow><mi>a</mi><mo>=</mo><mi>b</mi></mrow><mspace width="1em"/><mi>c</mi></math>`,
		`<math><mo>|</mo><mi>x</mi><mo>|</mo><mi>y</mi><mo>|</mo><mi>z</mi><mo>|</mo></math>`,
		`<math><mo>{</mo><mi>x</mi><mo>|</mo><mi>x</mi><mo>∈</mo><mi>S</mi><mo>}</mo></math>`,
		`<math><msub><mi>b</mi><mn>12</mn></msub></math>`,
		`<math><mi>sin</mi><mo>-</mo><mn>2</mn><mi>π</mi><mi>x</mi></math>`,
		`<math><mi>ker</mi><mn>2</mn><mi>π</mi><mi>x</mi></math>`,
		`<math><mn>2</mn><mfrac><mn>3</mn><mn>4</mn></mfrac></math>`,
		`<math><mo>∠</mo><mi>A</mi><mi>B</mi><mi>C</mi></math>`,
		`<math><mi>x</mi><mspace width="1em"/><mtext> </mtext><mi>y</mi></math>`,
		`<math><mtext mathcolor="red"> </mtext><mtext> </mtext><mi>y</mi></math>`,
		`<math><mi>sin</mi><mo>-</mo></math>`,
		`<math><mi data-maybe-chemistry="1">Cl</mi><mrow data-maybe-chemistry="1"><mo>(</mo><mi>g</mi><mo>)</mo></mrow></math>`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once, err := mathml.Canonicalize(mustRead(t, input))
			if err != nil {
				t.Fatal(err)
			}

			twice, err := mathml.Canonicalize(once)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Second pass changed the tree (-first +second):\n%s", diff)
			}
		})
	}
}

func TestCanonicalize_Markers(t *testing.T) {
	got, err := mathml.Canonicalize(mustRead(t, `<math><mi>t</mi><mo>(</mo><mi>x</mi><mo>+</mo><mi>y</mi><mo>)</mo></math>`))
	if err != nil {
		t.Fatal(err)
	}

	row := got.Children[0]
	if len(row.Children) != 3 {
		t.Fatalf("Expected function guess row of 3 children, got %s", mathml.Markup(row))
	}

	mo := row.Children[1]
	if mo.Data != mathml.InvisibleTimesChar {
		t.Errorf("Expected invisible times, got %q", mo.Data)
	}

	if mo.Attr(mathml.FunctionGuessAttr) != "true" {
		t.Errorf("Expected %s marker on %s", mathml.FunctionGuessAttr, mathml.Markup(mo))
	}

	if mo.Attr(mathml.ChangedAttr) != "added" {
		t.Errorf("Expected %s marker on %s", mathml.ChangedAttr, mathml.Markup(mo))
	}
}

func TestCanonicalize_KeepsInput(t *testing.T) {
	input := mustRead(t, `<math><mi>c</mi><mo>+</mo><mi>x</mi><mi>y</mi></math>`)
	before := input.Clone()

	if _, err := mathml.Canonicalize(input); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, input); diff != "" {
		t.Errorf("Input has been modified:\n%s", diff)
	}
}

func TestCanonicalize_WrapsRoot(t *testing.T) {
	got, err := mathml.Canonicalize(mustRead(t, `<mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow>`))
	if err != nil {
		t.Fatal(err)
	}

	if got.Kind != mathml.MathKind {
		t.Fatalf("Expected math root, got %s", got.Kind)
	}

	if got.Attr(mathml.ChangedAttr) != "added" {
		t.Errorf("Expected added math element, got %s", mathml.Markup(got))
	}
}

func TestCanonicalize_Errors(t *testing.T) {
	tt := []struct {
		name   string
		input  *mathml.Node
		reason string
	}{
		{
			name:   "fraction with one child",
			input:  mathml.NewElement(mathml.MathKind, mathml.NewElement(mathml.FractionKind, mathml.NewToken(mathml.NumberKind, "1"))),
			reason: "mfrac should have 2 children",
		},
		{
			name:   "token with children",
			input:  mathml.NewElement(mathml.MathKind, &mathml.Node{Kind: mathml.IdentifierKind, Children: []*mathml.Node{mathml.NewToken(mathml.NumberKind, "1")}}),
			reason: "should contain text only",
		},
		{
			name:   "unknown element",
			input:  mathml.NewElement(mathml.MathKind, &mathml.Node{Kind: mathml.UnknownKind, Data: "mfoo"}),
			reason: "unknown element",
		},
		{
			name: "annotation before presentation",
			input: mathml.NewElement(mathml.MathKind, mathml.NewElement(mathml.SemanticsKind,
				mathml.NewToken(mathml.AnnotationKind, "x"),
				mathml.NewElement(mathml.RowKind,
					mathml.NewToken(mathml.NumberKind, "2"),
					mathml.NewElement(mathml.FractionKind, mathml.NewToken(mathml.NumberKind, "3")),
				),
			)),
			reason: "mfrac should have 2 children",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mathml.Canonicalize(tc.input)
			if err == nil {
				t.Fatal("Canonicalize must fail")
			}

			var serr *mathml.StructureError
			if !errors.As(err, &serr) {
				t.Fatalf("Expected StructureError, got %T: %v", err, err)
			}

			if !strings.Contains(serr.Reason, tc.reason) {
				t.Errorf("Reason %q does not mention %q", serr.Reason, tc.reason)
			}
		})
	}
}

func TestCanonicalize_Nil(t *testing.T) {
	if _, err := mathml.Canonicalize(nil); err == nil {
		t.Error("Canonicalize(nil) must fail")
	}
}

func TestCanonicalize_NilDefinitions(t *testing.T) {
	c := mathml.NewCanonicalizer(mathml.WithDefinitions(nil))

	got, err := c.Canonicalize(mustRead(t, `<math><mi>sin</mi><mi>x</mi></math>`))
	if err != nil {
		t.Fatal(err)
	}

	want := mustRead(t, `<math><mrow><mi>sin</mi><mo>&#x2061;</mo><mi>x</mi></mrow></math>`)
	if diff := cmp.Diff(withoutChanged(want), withoutChanged(got), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Canonical tree does not match (-want +got):\n%s", diff)
	}
}

func TestCanonicalize_DecimalComma(t *testing.T) {
	c := mathml.NewCanonicalizer(mathml.WithDecimalSeparator(","))

	got, err := c.Canonicalize(mustRead(t, `<math><mn>1</mn><mo>.</mo><mn>234</mn><mo>,</mo><mn>5</mn></math>`))
	if err != nil {
		t.Fatal(err)
	}

	want := mustRead(t, `<math><mn>1.234,5</mn></math>`)
	if diff := cmp.Diff(withoutChanged(want), withoutChanged(got), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Canonical tree does not match (-want +got):\n%s", diff)
	}
}

func TestCanonicalize_CustomDefinitions(t *testing.T) {
	defs, err := mathml.LoadDefinitions(strings.NewReader("function_names: [foo]\n"))
	if err != nil {
		t.Fatal(err)
	}

	c := mathml.NewCanonicalizer(mathml.WithDefinitions(defs))

	got, err := c.Canonicalize(mustRead(t, `<math><mi>foo</mi><mi>x</mi></math>`))
	if err != nil {
		t.Fatal(err)
	}

	want := mustRead(t, `<math><mrow><mi>foo</mi><mo>&#x2061;</mo><mi>x</mi></mrow></math>`)
	if diff := cmp.Diff(withoutChanged(want), withoutChanged(got), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Canonical tree does not match (-want +got):\n%s", diff)
	}
}

func TestCanonicalize_Concurrent(t *testing.T) {
	input := mustRead(t, `<math><mi>sin</mi><mn>2</mn><mi>x</mi><mo>+</mo><mn>1</mn></math>`)

	want, err := mathml.Canonicalize(input)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]*mathml.Node, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = mathml.Canonicalize(input)
		}(i)
	}

	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Result %d differs:\n%s", i, diff)
		}
	}
}
