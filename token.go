package mathml

// Tokens produced by the TeX tokenizer

type Letter string
type Number string
type Command string
type Symbol string

// Verbatim is an argument of a command taken as is, like text in \text{...}
type Verbatim struct {
	Command string
	Data    string
}

type ParameterStart struct {
}

type ParameterEnd struct {
}

type OptionalStart struct {
}

type OptionalEnd struct {
}
