package mathml

// Form is a set of roles an operator plays in a row
type Form uint8

const (
	Prefix Form = 1 << iota
	Infix
	Postfix
	Fence

	LeftFence  = Prefix | Fence
	RightFence = Postfix | Fence
	AnyForm    = Prefix | Infix | Postfix | Fence
)

// Identity names operators the grouping rules need to recognize
type Identity uint8

const (
	NotAnOperator Identity = iota
	Ordinary
	Fencepost
	FunctionApplication
	ImpliedTimes
	ImpliedTimesHigh
	ImpliedSeparator
	ImpliedSeparatorHigh
	ImpliedPlus
	ImpliedPlusSlash
	ChemicalBond
	PlusSign
	MinusSign
	PrefixMinus
	TimesSign
)

// Invisible operator characters
const (
	FunctionApplicationChar = "\u2061"
	InvisibleTimesChar      = "\u2062"
	InvisibleSeparatorChar  = "\u2063"
	InvisiblePlusChar       = "\u2064"
	FencepostChar           = "\ue000"
)

// DefaultPriority is given to operators missing from the dictionary
const DefaultPriority = 260

type OperatorInfo struct {
	Form     Form
	Priority int
	Identity Identity
}

func (o OperatorInfo) IsPrefix() bool {
	return o.Form&Prefix != 0
}

func (o OperatorInfo) IsInfix() bool {
	return o.Form&Infix != 0
}

func (o OperatorInfo) IsPostfix() bool {
	return o.Form&Postfix != 0
}

func (o OperatorInfo) IsLeftFence() bool {
	return o.Form&LeftFence == LeftFence
}

func (o OperatorInfo) IsRightFence() bool {
	return o.Form&RightFence == RightFence
}

func (o OperatorInfo) IsFence() bool {
	return o.Form&Fence != 0
}

// Entry lists the readings of a single token, the first one is used when no reading fits
type Entry struct {
	readings [3]OperatorInfo
	count    int
}

func (e Entry) First() OperatorInfo {
	return e.readings[0]
}

// Find returns reading which shares a role with form
func (e Entry) Find(form Form) (OperatorInfo, bool) {
	for _, info := range e.readings[:e.count] {
		if info.Form&form != 0 {
			return info, true
		}
	}

	return OperatorInfo{}, false
}

// Versions returns the prefix, infix and postfix readings of the token
func (e Entry) Versions() (prefix, infix, postfix *OperatorInfo) {
	for i := range e.readings[:e.count] {
		info := &e.readings[i]
		switch {
		case info.IsPrefix() && prefix == nil:
			prefix = info
		case info.IsPostfix() && postfix == nil:
			postfix = info
		case info.IsInfix() && infix == nil:
			infix = info
		}
	}

	return
}

// OperatorPair is an operator chosen at some position, zero value stands for an operand
type OperatorPair struct {
	Text string
	Info OperatorInfo
}

func (p OperatorPair) IsOperator() bool {
	return p.Info.Identity != NotAnOperator
}

// continues is true when p can extend an n-ary row which ends with previous
func (p OperatorPair) continues(previous OperatorPair) bool {
	if p.Text == previous.Text && p.Info == previous.Info {
		return true
	}

	return isPlusOrMinus(p.Info) && isPlusOrMinus(previous.Info) || isTimes(p.Info) && isTimes(previous.Info)
}

func isPlusOrMinus(o OperatorInfo) bool {
	return o.Identity == PlusSign || o.Identity == MinusSign
}

func isTimes(o OperatorInfo) bool {
	return o.Identity == TimesSign || o.Identity == ImpliedTimes
}

var (
	fencepost            = OperatorInfo{Form: LeftFence, Priority: 0, Identity: Fencepost}
	functionApplication  = OperatorInfo{Form: Infix, Priority: 850, Identity: FunctionApplication}
	impliedTimes         = OperatorInfo{Form: Infix, Priority: 390, Identity: ImpliedTimes}
	impliedTimesHigh     = OperatorInfo{Form: Infix, Priority: 851, Identity: ImpliedTimesHigh}
	impliedSeparator     = OperatorInfo{Form: Infix, Priority: 40, Identity: ImpliedSeparator}
	impliedSeparatorHigh = OperatorInfo{Form: Infix, Priority: 901, Identity: ImpliedSeparatorHigh}
	impliedPlus          = OperatorInfo{Form: Infix, Priority: 880, Identity: ImpliedPlus}
	impliedPlusSlash     = OperatorInfo{Form: Infix, Priority: 881, Identity: ImpliedPlusSlash}
	chemicalBond         = OperatorInfo{Form: Infix, Priority: 905, Identity: ChemicalBond}
)

func defaultOperator(form Form) OperatorInfo {
	switch {
	case form&Prefix != 0:
		return OperatorInfo{Form: Prefix, Priority: DefaultPriority, Identity: Ordinary}
	case form&Postfix != 0:
		return OperatorInfo{Form: Postfix, Priority: DefaultPriority, Identity: Ordinary}
	default:
		return OperatorInfo{Form: Infix, Priority: DefaultPriority, Identity: Ordinary}
	}
}

func parseForm(value string) (Form, bool) {
	switch value {
	case "":
		return 0, false
	case "prefix":
		return Prefix, true
	case "postfix":
		return Postfix, true
	default:
		return Infix, true
	}
}
