package mathml

import (
	_ "embed"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var definitionsYAML string

// NameSet is a set of names, in YAML it's written as a sequence
type NameSet map[string]struct{}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s *NameSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return errors.Errorf("line %d: expected a list of names", value.Line)
	}

	set := make(NameSet, len(value.Content))
	for _, item := range value.Content {
		var name string
		if err := item.Decode(&name); err != nil {
			return errors.Wrapf(err, "line %d", item.Line)
		}

		set[name] = struct{}{}
	}

	*s = set
	return nil
}

// Definitions holds names consulted by function name classification
type Definitions struct {
	FunctionNames       NameSet `yaml:"function_names"`
	TrigFunctionNames   NameSet `yaml:"trig_function_names"`
	LikelyFunctionNames NameSet `yaml:"likely_function_names"`
	GeometryShapes      NameSet `yaml:"geometry_shapes"`
}

// LoadDefinitions reads definitions from YAML, lists missing in the document stay empty
func LoadDefinitions(r io.Reader) (*Definitions, error) {
	defs := &Definitions{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(defs); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "unable to decode definitions")
	}

	for _, set := range []*NameSet{&defs.FunctionNames, &defs.TrigFunctionNames, &defs.LikelyFunctionNames, &defs.GeometryShapes} {
		if *set == nil {
			*set = NameSet{}
		}
	}

	return defs, nil
}

var (
	defaultDefinitions     *Definitions
	defaultDefinitionsOnce sync.Once
)

// DefaultDefinitions returns built-in definitions, they are shared and must not be modified
func DefaultDefinitions() *Definitions {
	defaultDefinitionsOnce.Do(func() {
		defs, err := LoadDefinitions(strings.NewReader(definitionsYAML))
		if err != nil {
			panic(err)
		}

		defaultDefinitions = defs
	})

	return defaultDefinitions
}
