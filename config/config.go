// Package config loads the YAML file describing the server and the models it
// serves, including each model's serialization override.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rediwo/redi-json/schema"
	"github.com/rediwo/redi-json/serializer"
	"github.com/stretchr/objx"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config is the root of the configuration file
type Config struct {
	Server ServerConfig  `yaml:"server"`
	Models []ModelConfig `yaml:"models"`
}

// ServerConfig holds the REST server and database settings
type ServerConfig struct {
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	LogLevel string `yaml:"log_level"`
}

// ModelConfig describes one model
type ModelConfig struct {
	Name      string                    `yaml:"name"`
	Table     string                    `yaml:"table"`
	Fields    []FieldConfig             `yaml:"fields"`
	Relations map[string]RelationConfig `yaml:"relations"`

	// Serialization is the model's override of its default serialization
	// options (relationships, exclude_attrs, include_attrs).
	Serialization map[string]any `yaml:"serialization"`
}

type FieldConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PrimaryKey bool   `yaml:"primary_key"`
	Nullable   bool   `yaml:"nullable"`
	Column     string `yaml:"column"`
}

type RelationConfig struct {
	Type       string `yaml:"type"`
	Model      string `yaml:"model"`
	ForeignKey string `yaml:"foreign_key"`
	References string `yaml:"references"`
	Through    string `yaml:"through"`
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes YAML configuration from r. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
}

// Schemas builds the schemas of all models and validates their relations
// against each other
func (c *Config) Schemas() ([]*schema.Schema, error) {
	schemas := make([]*schema.Schema, 0, len(c.Models))
	byName := make(map[string]*schema.Schema, len(c.Models))

	for _, m := range c.Models {
		s, err := m.Schema()
		if err != nil {
			return nil, err
		}
		if _, exists := byName[s.Name]; exists {
			return nil, fmt.Errorf("model %s defined twice", s.Name)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("model %s: %w", s.Name, err)
		}
		schemas = append(schemas, s)
		byName[s.Name] = s
	}

	for _, s := range schemas {
		if err := s.ValidateRelations(byName); err != nil {
			return nil, fmt.Errorf("model %s: %w", s.Name, err)
		}
	}

	return schemas, nil
}

// Register builds the schemas and registers every model with its
// serialization override
func (c *Config) Register(registry *serializer.Registry) error {
	schemas, err := c.Schemas()
	if err != nil {
		return err
	}

	for i, s := range schemas {
		if err := registry.Register(s, objx.Map(c.Models[i].Serialization)); err != nil {
			return err
		}
	}
	return nil
}

// Schema converts the model description into a schema
func (m ModelConfig) Schema() (*schema.Schema, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("model without a name")
	}

	s := schema.New(m.Name)
	if m.Table != "" {
		s.WithTableName(m.Table)
	}

	for _, f := range m.Fields {
		fieldType := schema.FieldType(f.Type)
		if f.Type == "" {
			fieldType = schema.FieldTypeString
		}
		s.AddField(schema.Field{
			Name:       f.Name,
			Type:       fieldType,
			PrimaryKey: f.PrimaryKey,
			Nullable:   f.Nullable,
			Map:        f.Column,
		})
	}

	for name, r := range m.Relations {
		relationType := schema.RelationType(r.Type)
		if !relationType.Valid() {
			return nil, fmt.Errorf("model %s: relation %s has unknown type %q", m.Name, name, r.Type)
		}
		s.AddRelation(name, schema.Relation{
			Type:       relationType,
			Model:      r.Model,
			ForeignKey: r.ForeignKey,
			References: r.References,
			Through:    r.Through,
		})
	}

	return s, nil
}
