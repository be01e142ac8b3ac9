package mathml

type reading struct {
	form     Form
	priority int
	identity Identity
}

// ordinary is a shortcut for dictionary readings without special identity
func ordinary(form Form, priority int) reading {
	return reading{form: form, priority: priority, identity: Ordinary}
}

// operatorTable lists operator readings, priorities follow MathML operator dictionary
var operatorTable = map[string][]reading{
	// fences
	"(": {ordinary(LeftFence, 20)},
	")": {ordinary(RightFence, 20)},
	"[": {ordinary(LeftFence, 20)},
	"]": {ordinary(RightFence, 20)},
	"{": {ordinary(LeftFence, 20)},
	"}": {ordinary(RightFence, 20)},
	"⟨": {ordinary(LeftFence, 20)},
	"⟩": {ordinary(RightFence, 20)},
	"⌈": {ordinary(LeftFence, 20)},
	"⌉": {ordinary(RightFence, 20)},
	"⌊": {ordinary(LeftFence, 20)},
	"⌋": {ordinary(RightFence, 20)},
	"⟦": {ordinary(LeftFence, 20)},
	"⟧": {ordinary(RightFence, 20)},
	"|": {ordinary(Infix, 100), ordinary(LeftFence, 20), ordinary(RightFence, 20)},
	"‖": {ordinary(Infix, 100), ordinary(LeftFence, 20), ordinary(RightFence, 20)},
	"∥": {ordinary(Infix, 265), ordinary(LeftFence, 20), ordinary(RightFence, 20)},

	// separators
	";": {ordinary(Infix, 30)},
	",": {ordinary(Infix, 40)},
	InvisibleSeparatorChar: {{form: Infix, priority: 40, identity: ImpliedSeparator}},
	":": {ordinary(Infix, 100)},

	// logic
	"⇔": {ordinary(Infix, 150)},
	"⟺": {ordinary(Infix, 150)},
	"⇒": {ordinary(Infix, 150)},
	"⟹": {ordinary(Infix, 150)},
	"⇐": {ordinary(Infix, 150)},
	"⟸": {ordinary(Infix, 150)},
	"∨": {ordinary(Infix, 190)},
	"∧": {ordinary(Infix, 200)},
	"∀": {ordinary(Prefix, 230)},
	"∃": {ordinary(Prefix, 230)},
	"∄": {ordinary(Prefix, 230)},

	// relations
	"=":  {ordinary(Infix, 260)},
	"≠":  {ordinary(Infix, 260)},
	"<":  {ordinary(Infix, 260)},
	">":  {ordinary(Infix, 260)},
	"≤":  {ordinary(Infix, 260)},
	"≥":  {ordinary(Infix, 260)},
	"≪":  {ordinary(Infix, 260)},
	"≫":  {ordinary(Infix, 260)},
	"≈":  {ordinary(Infix, 260)},
	"≡":  {ordinary(Infix, 260)},
	"≅":  {ordinary(Infix, 260)},
	"∼":  {ordinary(Infix, 260)},
	"≃":  {ordinary(Infix, 260)},
	"∝":  {ordinary(Infix, 260)},
	"≔":  {ordinary(Infix, 260)},
	"∈":  {ordinary(Infix, 260)},
	"∉":  {ordinary(Infix, 260)},
	"∋":  {ordinary(Infix, 260)},
	"⊂":  {ordinary(Infix, 260)},
	"⊃":  {ordinary(Infix, 260)},
	"⊆":  {ordinary(Infix, 260)},
	"⊇":  {ordinary(Infix, 260)},
	"⊄":  {ordinary(Infix, 260)},
	"⊥":  {ordinary(Infix, 260)},
	"≺":  {ordinary(Infix, 260)},
	"≻":  {ordinary(Infix, 260)},
	"∣":  {ordinary(Infix, 265)},
	"∤":  {ordinary(Infix, 265)},
	"→":  {ordinary(Infix, 270)},
	"←":  {ordinary(Infix, 270)},
	"↔":  {ordinary(Infix, 270)},
	"↦":  {ordinary(Infix, 270)},
	"⟶":  {ordinary(Infix, 270)},
	"⟵":  {ordinary(Infix, 270)},
	"↑":  {ordinary(Infix, 270)},
	"↓":  {ordinary(Infix, 270)},

	// additive
	"+": {{form: Infix, priority: 275, identity: PlusSign}, ordinary(Prefix, 720)},
	"-": {{form: Infix, priority: 275, identity: MinusSign}, {form: Prefix, priority: 720, identity: PrefixMinus}},
	"±": {ordinary(Infix, 275), ordinary(Prefix, 720)},
	"∓": {ordinary(Infix, 275), ordinary(Prefix, 720)},
	"¬": {ordinary(Prefix, 280)},
	"⊕": {ordinary(Infix, 300)},
	"∪": {ordinary(Infix, 350)},
	"∩": {ordinary(Infix, 350)},

	// large operators
	"∑": {ordinary(Prefix, 290)},
	"∏": {ordinary(Prefix, 290)},
	"∐": {ordinary(Prefix, 290)},
	"∫": {ordinary(Prefix, 310)},
	"∬": {ordinary(Prefix, 310)},
	"∭": {ordinary(Prefix, 310)},
	"∮": {ordinary(Prefix, 310)},
	"⋃": {ordinary(Prefix, 320)},
	"⋂": {ordinary(Prefix, 320)},
	"⋁": {ordinary(Prefix, 320)},
	"⋀": {ordinary(Prefix, 320)},

	// multiplicative
	"×": {{form: Infix, priority: 390, identity: TimesSign}},
	InvisibleTimesChar: {{form: Infix, priority: 390, identity: ImpliedTimes}},
	"⋅": {ordinary(Infix, 390)},
	"·": {ordinary(Infix, 390)},
	"*": {ordinary(Infix, 390)},
	"∗": {ordinary(Infix, 390)},
	"⊗": {ordinary(Infix, 410)},
	"∖": {ordinary(Infix, 650)},
	"/": {ordinary(Infix, 660)},
	"÷": {ordinary(Infix, 660)},
	"∠": {ordinary(Prefix, 670)},
	"∘": {ordinary(Infix, 710)},
	"∂": {ordinary(Prefix, 740)},
	"∇": {ordinary(Prefix, 740)},

	// postfix
	"′": {ordinary(Postfix, 800)},
	"″": {ordinary(Postfix, 800)},
	"‴": {ordinary(Postfix, 800)},
	"'": {ordinary(Postfix, 800)},
	"!": {ordinary(Postfix, 810)},
	"%": {ordinary(Postfix, 820)},
	"°": {ordinary(Postfix, 880)},

	// invisible
	FunctionApplicationChar: {{form: Infix, priority: 850, identity: FunctionApplication}},
	InvisiblePlusChar: {{form: Infix, priority: 880, identity: ImpliedPlus}},
}

var operators = func() map[string]Entry {
	entries := make(map[string]Entry, len(operatorTable))
	for text, readings := range operatorTable {
		var entry Entry
		for _, r := range readings {
			entry.readings[entry.count] = OperatorInfo{Form: r.form, Priority: r.priority, Identity: r.identity}
			entry.count++
		}

		entries[text] = entry
	}

	return entries
}()

// LookupOperator returns dictionary entry of a token
func LookupOperator(text string) (Entry, bool) {
	entry, ok := operators[text]
	return entry, ok
}

// isAmbiguousFence is true for tokens which can open, close or separate
func isAmbiguousFence(text string) bool {
	return text == "|" || text == "‖" || text == "∥"
}
