package mathml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupOperator(t *testing.T) {
	tt := []struct {
		name string
		text string
		form Form
		want OperatorInfo
	}{
		{name: "binary plus", text: "+", form: Infix, want: OperatorInfo{Form: Infix, Priority: 275, Identity: PlusSign}},
		{name: "unary minus", text: "-", form: Prefix, want: OperatorInfo{Form: Prefix, Priority: 720, Identity: PrefixMinus}},
		{name: "opening bar", text: "|", form: Prefix, want: OperatorInfo{Form: LeftFence, Priority: 20, Identity: Ordinary}},
		{name: "closing bar", text: "|", form: Postfix, want: OperatorInfo{Form: RightFence, Priority: 20, Identity: Ordinary}},
		{name: "bar as separator", text: "|", form: Infix, want: OperatorInfo{Form: Infix, Priority: 100, Identity: Ordinary}},
		{name: "open paren", text: "(", form: Prefix, want: OperatorInfo{Form: LeftFence, Priority: 20, Identity: Ordinary}},
		{name: "invisible times", text: InvisibleTimesChar, form: Infix, want: OperatorInfo{Form: Infix, Priority: 390, Identity: ImpliedTimes}},
		{name: "function application", text: FunctionApplicationChar, form: Infix, want: functionApplication},
		{name: "factorial", text: "!", form: Postfix, want: OperatorInfo{Form: Postfix, Priority: 810, Identity: Ordinary}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := LookupOperator(tc.text)
			if !ok {
				t.Fatalf("Operator %q is not in the dictionary", tc.text)
			}

			got, ok := entry.Find(tc.form)
			if !ok {
				t.Fatalf("Operator %q has no reading for form %v", tc.text, tc.form)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Reading does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupOperator_Missing(t *testing.T) {
	if _, ok := LookupOperator("x"); ok {
		t.Error("Letters must not be operators")
	}

	entry, _ := LookupOperator("(")
	if _, ok := entry.Find(Infix); ok {
		t.Error("Paren must not have infix reading")
	}
}

func TestEntry_Versions(t *testing.T) {
	entry, _ := LookupOperator("-")

	prefix, infix, postfix := entry.Versions()
	if prefix == nil || prefix.Priority != 720 {
		t.Errorf("Expected prefix minus with priority 720, got %+v", prefix)
	}

	if infix == nil || infix.Priority != 275 {
		t.Errorf("Expected infix minus with priority 275, got %+v", infix)
	}

	if postfix != nil {
		t.Errorf("Minus has no postfix reading, got %+v", postfix)
	}
}

func TestOperatorPair_Continues(t *testing.T) {
	pair := func(text string, form Form) OperatorPair {
		entry, _ := LookupOperator(text)
		info, _ := entry.Find(form)
		return OperatorPair{Text: text, Info: info}
	}

	tt := []struct {
		name     string
		previous OperatorPair
		current  OperatorPair
		want     bool
	}{
		{name: "same operator", previous: pair("=", Infix), current: pair("=", Infix), want: true},
		{name: "plus after minus", previous: pair("-", Infix), current: pair("+", Infix), want: true},
		{name: "times after implied times", previous: pair(InvisibleTimesChar, Infix), current: pair("×", Infix), want: true},
		{name: "relations differ", previous: pair("=", Infix), current: pair("<", Infix), want: false},
		{name: "plus after times", previous: pair("×", Infix), current: pair("+", Infix), want: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.current.continues(tc.previous); got != tc.want {
				t.Errorf("continues() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseForm(t *testing.T) {
	tt := []struct {
		value string
		form  Form
		ok    bool
	}{
		{value: "prefix", form: Prefix, ok: true},
		{value: "postfix", form: Postfix, ok: true},
		{value: "infix", form: Infix, ok: true},
		{value: "", ok: false},
	}

	for _, tc := range tt {
		t.Run(tc.value, func(t *testing.T) {
			form, ok := parseForm(tc.value)
			if ok != tc.ok || form != tc.form {
				t.Errorf("parseForm(%q) = %v, %v, want %v, %v", tc.value, form, ok, tc.form, tc.ok)
			}
		})
	}
}
