package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eolymp/go-mathml"
)

// Config defines program configuration.
type Config struct {
	Input       string            // Input file, standard input when empty.
	Output      string            // Path to store output in, standard output when empty.
	TeX         bool              // Input is math mode TeX rather than MathML.
	Indent      int               // Spaces per nesting level in the output, zero writes a single line.
	Definitions string            // YAML file with function and shape names.
	Decimal     string            // Decimal separator.
	Macros      map[string]string // TeX macros.
	Trace       string            // Trace level.
	Repl        bool              // Start interactive session.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Decimal = "."
	c.Trace = "Error"

	flag.Usage = func() {
		fmt.Printf("%s [options] [input file]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file.")
	flag.BoolVar(&c.TeX, "tex", c.TeX, "Read math mode TeX instead of MathML.")
	flag.IntVar(&c.Indent, "indent", c.Indent, "Indent output by this number of spaces per level.")
	flag.StringVar(&c.Definitions, "defs", c.Definitions, "YAML file with function names, trigonometric function names and geometry shapes.")
	flag.StringVar(&c.Decimal, "decimal", c.Decimal, "Decimal separator, either \".\" or \",\".")
	macros := flag.String("define", "", "Comma-separated TeX macros, for example R=ℝ, N=\\mathbb{N}.")
	flag.StringVar(&c.Trace, "trace", c.Trace, "Trace level: Debug, Info or Error.")
	flag.BoolVar(&c.Repl, "repl", c.Repl, "Read formulas line by line in an interactive session.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if c.Decimal != "." && c.Decimal != "," {
		fmt.Fprintf(os.Stderr, "unsupported decimal separator %q\n", c.Decimal)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	c.Macros = mathml.KeyValue(*macros)
	c.Input = flag.Arg(0)
	return &c
}
