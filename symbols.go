package mathml

// symbol maps TeX characters to the characters used in MathML
func symbol(a string) string {
	switch a {
	case "*":
		return "∗"
	case "'":
		return "′"
	case "''":
		return "″"
	case "'''":
		return "‴"
	case "~":
		return nbsp
	default:
		return a
	}
}

// dashes replaces runs of ASCII dashes the way typewriter text writes long dashes
func dashes(a string) string {
	switch a {
	case "--":
		return "—"
	case "---", "----":
		return "―"
	default:
		return a
	}
}

// operatorText normalizes text of mo, variants of the same symbol end up as a single character
func operatorText(text string, ctx rowContext) string {
	text = trimXMLSpace(text)

	switch text {
	case "\u2212", "\u2010", "\u2012":
		return "-"
	case "ǁ":
		return "‖"
	}

	// overbars
	if (ctx.parent == UnderKind || ctx.parent == OverKind || ctx.parent == UnderOverKind) && ctx.index > 0 {
		switch text {
		case "_", "\u203e", "\u0304", "\u0305", "\u02c9", "\u2015", "\u2014":
			return "¯"
		}
	}

	// degrees
	if ctx.parent == SupKind && ctx.index == 1 {
		switch text {
		case "∘", "○", "º":
			return "°"
		}
	}

	return text
}

// commandOperators are TeX commands producing mo
var commandOperators = map[string]string{
	"\\times": "×", "\\cdot": "⋅", "\\div": "÷", "\\pm": "±", "\\mp": "∓", "\\ast": "∗",
	"\\le": "≤", "\\leq": "≤", "\\ge": "≥", "\\geq": "≥", "\\ne": "≠", "\\neq": "≠",
	"\\ll": "≪", "\\gg": "≫", "\\approx": "≈", "\\equiv": "≡", "\\cong": "≅", "\\sim": "∼",
	"\\simeq": "≃", "\\propto": "∝", "\\in": "∈", "\\notin": "∉", "\\ni": "∋",
	"\\subset": "⊂", "\\supset": "⊃", "\\subseteq": "⊆", "\\supseteq": "⊇", "\\perp": "⊥",
	"\\mid": "∣", "\\nmid": "∤", "\\parallel": "∥", "\\vert": "|", "\\lvert": "|", "\\rvert": "|",
	"\\|": "‖", "\\Vert": "‖", "\\lVert": "‖", "\\rVert": "‖",
	"\\to": "→", "\\rightarrow": "→", "\\leftarrow": "←", "\\gets": "←", "\\leftrightarrow": "↔",
	"\\mapsto": "↦", "\\longrightarrow": "⟶", "\\uparrow": "↑", "\\downarrow": "↓",
	"\\Rightarrow": "⇒", "\\Leftarrow": "⇐", "\\Leftrightarrow": "⇔", "\\implies": "⟹", "\\iff": "⟺",
	"\\land": "∧", "\\wedge": "∧", "\\lor": "∨", "\\vee": "∨", "\\neg": "¬", "\\lnot": "¬",
	"\\forall": "∀", "\\exists": "∃", "\\nexists": "∄",
	"\\cup": "∪", "\\cap": "∩", "\\setminus": "∖", "\\oplus": "⊕", "\\otimes": "⊗", "\\circ": "∘",
	"\\sum": "∑", "\\prod": "∏", "\\coprod": "∐", "\\int": "∫", "\\iint": "∬", "\\iiint": "∭",
	"\\oint": "∮", "\\bigcup": "⋃", "\\bigcap": "⋂", "\\bigvee": "⋁", "\\bigwedge": "⋀",
	"\\partial": "∂", "\\nabla": "∇", "\\angle": "∠", "\\prime": "′", "\\colon": ":",
	"\\{": "{", "\\}": "}", "\\lbrace": "{", "\\rbrace": "}", "\\langle": "⟨", "\\rangle": "⟩",
	"\\lfloor": "⌊", "\\rfloor": "⌋", "\\lceil": "⌈", "\\rceil": "⌉", "\\lbrack": "[", "\\rbrack": "]",
	"\\%": "%",
}

// commandIdentifiers are TeX commands producing mi
var commandIdentifiers = map[string]string{
	"\\alpha": "α", "\\beta": "β", "\\gamma": "γ", "\\delta": "δ", "\\epsilon": "ϵ", "\\varepsilon": "ε",
	"\\zeta": "ζ", "\\eta": "η", "\\theta": "θ", "\\vartheta": "ϑ", "\\iota": "ι", "\\kappa": "κ",
	"\\lambda": "λ", "\\mu": "μ", "\\nu": "ν", "\\xi": "ξ", "\\pi": "π", "\\varpi": "ϖ", "\\rho": "ρ",
	"\\sigma": "σ", "\\tau": "τ", "\\upsilon": "υ", "\\phi": "ϕ", "\\varphi": "φ", "\\chi": "χ",
	"\\psi": "ψ", "\\omega": "ω", "\\Gamma": "Γ", "\\Delta": "Δ", "\\Theta": "Θ", "\\Lambda": "Λ",
	"\\Xi": "Ξ", "\\Pi": "Π", "\\Sigma": "Σ", "\\Upsilon": "Υ", "\\Phi": "Φ", "\\Psi": "Ψ", "\\Omega": "Ω",
	"\\infty": "∞", "\\emptyset": "∅", "\\varnothing": "∅", "\\ell": "ℓ", "\\hbar": "ℏ",
	"\\ldots": "…", "\\dots": "…", "\\cdots": "⋯", "\\vdots": "⋮", "\\ddots": "⋱",
	"\\triangle": "△", "\\square": "□", "\\odot": "⊙", "\\measuredangle": "∡",
	"\\$": "$", "\\#": "#", "\\&": "&",
}

// commandFunctions are TeX commands for named functions
var commandFunctions = map[string]bool{
	"\\sin": true, "\\cos": true, "\\tan": true, "\\sec": true, "\\csc": true, "\\cot": true,
	"\\sinh": true, "\\cosh": true, "\\tanh": true, "\\coth": true,
	"\\arcsin": true, "\\arccos": true, "\\arctan": true,
	"\\exp": true, "\\log": true, "\\ln": true, "\\lg": true, "\\det": true, "\\dim": true,
	"\\ker": true, "\\deg": true, "\\gcd": true, "\\lim": true, "\\liminf": true, "\\limsup": true,
	"\\inf": true, "\\sup": true, "\\max": true, "\\min": true, "\\arg": true, "\\hom": true, "\\Pr": true,
}

// commandSpaces are TeX spacing commands and their widths
var commandSpaces = map[string]string{
	"\\,": "0.1667em", "\\:": "0.2222em", "\\>": "0.2222em", "\\;": "0.2778em", "\\ ": "0.25em",
	"\\!": "-0.1667em", "\\quad": "1em", "\\qquad": "2em",
}

// commandAccents are TeX commands putting a mark over or under their argument
var commandAccents = map[string]struct {
	kind Kind
	mark string
}{
	"\\overline":  {OverKind, "¯"},
	"\\bar":       {OverKind, "¯"},
	"\\hat":       {OverKind, "^"},
	"\\widehat":   {OverKind, "^"},
	"\\tilde":     {OverKind, "~"},
	"\\vec":       {OverKind, "→"},
	"\\dot":       {OverKind, "˙"},
	"\\ddot":      {OverKind, "¨"},
	"\\underline": {UnderKind, "_"},
}

// commandVariants are TeX font commands and the mathvariant they stand for
var commandVariants = map[string]string{
	"\\mathbf":   "bold",
	"\\mathit":   "italic",
	"\\mathrm":   "normal",
	"\\mathbb":   "double-struck",
	"\\mathcal":  "script",
	"\\mathfrak": "fraktur",
	"\\mathsf":   "sans-serif",
	"\\mathtt":   "monospace",
}
