package config

import (
	"fmt"
	"os"
	"unicode"

	"github.com/docspec/docspec/internal/dialect"
	"github.com/docspec/docspec/internal/suite"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for suite generation.
type Config struct {
	Inputs       []string      `yaml:"inputs"`        // files, directories, or dir/... patterns
	Output       string        `yaml:"output"`        // path of the generated file
	Package      string        `yaml:"package"`       // package clause of the generated file
	ClassName    string        `yaml:"class_name"`    // name of the generated suite type
	SuperTypes   []string      `yaml:"super_types"`   // "import/path.Name"; first is the primary base
	ExtraImports []string      `yaml:"extra_imports"` // imports the embedded examples rely on
	Dialect      DialectConfig `yaml:"dialect"`
	Tags         []string      `yaml:"tags"` // recognized doc tag labels
}

// DialectConfig selects the input-source and embedded-example syntax.
type DialectConfig struct {
	Source  string `yaml:"source"`
	Example string `yaml:"example"`
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills the optional fields.
func (c *Config) applyDefaults() {
	if c.ClassName == "" {
		c.ClassName = "DocSuite"
	}
	if len(c.SuperTypes) == 0 {
		c.SuperTypes = []string{suite.DefaultBase.Path + "." + suite.DefaultBase.Name}
	}
	if len(c.Tags) == 0 {
		c.Tags = []string{"example", "note"}
	}
	if c.Dialect.Source == "" {
		c.Dialect.Source = string(dialect.SourceGo)
	}
	if c.Dialect.Example == "" {
		c.Dialect.Example = string(dialect.ExampleBlock)
	}
}

// Validate checks the configuration for required fields and consistency.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("inputs is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if !isIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid identifier", c.Package)
	}
	if !isIdentifier(c.ClassName) || !unicode.IsUpper([]rune(c.ClassName)[0]) {
		return fmt.Errorf("class_name %q must be a valid exported identifier", c.ClassName)
	}
	if _, err := c.SuperTypeRefs(); err != nil {
		return err
	}
	return c.DialectValue().Validate()
}

// DialectValue returns the configured dialect.
func (c *Config) DialectValue() dialect.Dialect {
	return dialect.Dialect{
		Source:  dialect.Source(c.Dialect.Source),
		Example: dialect.Example(c.Dialect.Example),
	}
}

// SuperTypeRefs parses the super type references in configured order.
func (c *Config) SuperTypeRefs() ([]suite.TypeRef, error) {
	refs := make([]suite.TypeRef, len(c.SuperTypes))
	for i, s := range c.SuperTypes {
		ref, err := suite.ParseTypeRef(s)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

// isIdentifier reports whether s is a valid Go identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
