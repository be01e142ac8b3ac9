package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eolymp/go-mathml"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/peterh/liner"
)

const historyFile = ".mathcanon_history"

func main() {
	config := parseArgs()
	setupTracing(config)

	canon, err := newCanonicalizer(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.Repl {
		repl(config, canon)
		return
	}

	convertFile(config, canon)
}

// setupTracing routes traces of the canonicalizer to standard error
func setupTracing(c *Config) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))

	trace := tracing.Select(mathml.TraceKey)
	trace.SetOutput(os.Stderr)
	trace.SetTraceLevel(tracing.TraceLevelFromString(c.Trace))
}

func newCanonicalizer(c *Config) (*mathml.Canonicalizer, error) {
	opts := []mathml.Option{mathml.WithDecimalSeparator(c.Decimal)}

	if c.Definitions != "" {
		fd, err := os.Open(c.Definitions)
		if err != nil {
			return nil, err
		}

		defer fd.Close()

		defs, err := mathml.LoadDefinitions(fd)
		if err != nil {
			return nil, err
		}

		opts = append(opts, mathml.WithDefinitions(defs))
	}

	return mathml.NewCanonicalizer(opts...), nil
}

// convertFile canonicalizes the whole input and writes the result to the requested output.
func convertFile(c *Config, canon *mathml.Canonicalizer) {
	r, closeReader := makeReader(c)
	defer closeReader()

	node, err := read(c, r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := canon.Canonicalize(node)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, closeWriter := makeWriter(c)
	defer closeWriter()

	if err := mathml.Write(w, out, c.Indent); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintln(w)
}

// repl canonicalizes formulas typed one per line
func repl(c *Config, canon *mathml.Canonicalizer) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	prompt := "mathml> "
	if c.TeX {
		prompt = "tex> "
	}

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return
		}

		ln.AppendHistory(line)

		node, err := read(c, strings.NewReader(line))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		out, err := canon.Canonicalize(node)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if err := mathml.Write(os.Stdout, out, c.Indent); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		fmt.Println()
	}
}

func read(c *Config, r io.Reader) (*mathml.Node, error) {
	if !c.TeX {
		return mathml.Read(r)
	}

	parser := mathml.NewParser(bufio.NewReader(r))
	for key, value := range c.Macros {
		parser.Define(key, value)
	}

	return parser.Parse()
}

// makeReader opens the input and returns a cleanup function for it.
func makeReader(c *Config) (io.Reader, func()) {
	if c.Input == "" {
		return os.Stdin, func() {}
	}

	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	if dir, _ := filepath.Split(c.Output); dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
