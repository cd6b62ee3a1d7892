package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/diwise/document-model/pkg/documents"
	"github.com/diwise/document-model/pkg/documents/types"
	yaml "gopkg.in/yaml.v2"
)

type AttributeInfo struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Default  any      `yaml:"default"`
	Values   []string `yaml:"values"`
	Multiple bool     `yaml:"multiple"`
	Strict   bool     `yaml:"strict"`
}

type EmbeddingInfo struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
}

// TargetName returns the configured target document type, defaulting to a
// name derived from the relation: the relation name itself, with a plural
// s trimmed off for embeds-many relations.
func (e EmbeddingInfo) TargetName(many bool) string {
	if e.Target != "" {
		return e.Target
	}

	if many {
		return strings.TrimSuffix(e.Name, "s")
	}

	return e.Name
}

type DocumentInfo struct {
	Name       string          `yaml:"name"`
	Attributes []AttributeInfo `yaml:"attributes"`
	EmbedsOne  []EmbeddingInfo `yaml:"embedsOne"`
	EmbedsMany []EmbeddingInfo `yaml:"embedsMany"`
}

type Config struct {
	Documents []DocumentInfo `yaml:"documents"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}

// BuildDefinitions materializes the configured document types against the
// supplied registry. Attributes are bound first for every type, then the
// embeddings are wired, so targets may be declared in any order.
func (cfg *Config) BuildDefinitions(registry *types.Registry) (map[string]*documents.Definition, error) {
	definitions := map[string]*documents.Definition{}

	for _, info := range cfg.Documents {
		decorators := []documents.DefinitionDecoratorFunc{
			documents.UseRegistry(registry),
		}

		for _, a := range info.Attributes {
			decorators = append(decorators, documents.Attribute(a.Name, a.Type, a.options()...))
		}

		d, err := documents.NewDefinition(info.Name, decorators...)
		if err != nil {
			return nil, fmt.Errorf("failed to define document type %q: %w", info.Name, err)
		}

		definitions[info.Name] = d
	}

	for _, info := range cfg.Documents {
		d := definitions[info.Name]

		for _, e := range info.EmbedsOne {
			target, ok := definitions[e.TargetName(false)]
			if !ok {
				return nil, fmt.Errorf("embeds-one relation %q on %q references unknown document type %q",
					e.Name, info.Name, e.TargetName(false))
			}

			if err := d.BindEmbedsOne(e.Name, target); err != nil {
				return nil, err
			}
		}

		for _, e := range info.EmbedsMany {
			target, ok := definitions[e.TargetName(true)]
			if !ok {
				return nil, fmt.Errorf("embeds-many relation %q on %q references unknown document type %q",
					e.Name, info.Name, e.TargetName(true))
			}

			if err := d.BindEmbedsMany(e.Name, target); err != nil {
				return nil, err
			}
		}
	}

	return definitions, nil
}

func (a AttributeInfo) options() []documents.AttributeOption {
	options := []documents.AttributeOption{}

	if a.Default != nil {
		options = append(options, documents.WithDefault(a.Default))
	}

	if a.Type == "enumeration" {
		options = append(options, documents.WithTypeConfig(types.Config{
			"values":   a.Values,
			"multiple": a.Multiple,
			"strict":   a.Strict,
		}))
	}

	return options
}
