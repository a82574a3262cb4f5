package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefinitionFile is the root of a YAML annotation definitions file. This is
// the authoritative, human-reviewed type configuration.
type DefinitionFile struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Annotations is the ordered list of annotation type definitions.
	Annotations []AnnotationDef `yaml:"annotations"`
}

// AnnotationDef defines one annotation type.
type AnnotationDef struct {
	// Name is the annotation type identity, unique within the file.
	Name string `yaml:"name"`

	// Repeatable marks the type as collectable inside a container
	// annotation.
	Repeatable bool `yaml:"repeatable,omitempty"`

	// Attributes is the ordered attribute list.
	Attributes []AttributeDef `yaml:"attributes,omitempty"`

	// Meta lists the annotations declared directly on this type, in order.
	Meta []MetaRef `yaml:"meta,omitempty"`
}

// AttributeDef defines one attribute of an annotation type.
type AttributeDef struct {
	// Name is unique within the owning annotation.
	Name string `yaml:"name"`

	// Kind is the declared kind; empty means scalar.
	Kind string `yaml:"kind,omitempty"`

	// Elem names the nested annotation type for nested kinds.
	Elem string `yaml:"elem,omitempty"`

	// Default is the declared default value.
	Default any `yaml:"default,omitempty"`

	// Alias is the explicit alias declaration.
	Alias *AliasDef `yaml:"alias,omitempty"`
}

// AliasDef declares an explicit attribute alias.
// YAML formats supported:
//   - Bare string: "path" (same type, target attribute "path")
//   - Full form: {type: Route, attribute: path}
type AliasDef struct {
	// Type is the target annotation type; empty means the owning type.
	Type string `yaml:"type,omitempty"`
	// Attribute is the target attribute; empty means the source's name.
	Attribute string `yaml:"attribute,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for AliasDef.
// Accepts either a bare attribute name or the full map form.
func (a *AliasDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var attr string

		err := node.Decode(&attr)
		if err != nil {
			return err
		}

		*a = AliasDef{Attribute: attr}

		return nil

	case yaml.MappingNode:
		type plain AliasDef

		var full plain

		err := node.Decode(&full)
		if err != nil {
			return err
		}

		*a = AliasDef(full)

		return nil

	default:
		return fmt.Errorf("expected attribute name or alias map, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for AliasDef.
// Outputs the bare attribute name when no target type is set.
func (a AliasDef) MarshalYAML() (any, error) {
	if a.Type == "" {
		return a.Attribute, nil
	}

	type plain AliasDef

	return plain(a), nil
}

// MetaRef is one meta-annotation occurrence on an annotation type: the
// target type plus the literal attribute values declared with it.
type MetaRef struct {
	Type   string         `yaml:"type"`
	Values map[string]any `yaml:"values,omitempty"`
}

// InstanceFile is the root of a YAML instances file: concrete annotated
// elements and the annotation occurrences found on them.
type InstanceFile struct {
	Elements []Element `yaml:"elements"`
}

// Element is one annotated declaration together with its hierarchy of
// aggregate levels, in scanner order.
type Element struct {
	Name   string  `yaml:"name"`
	Levels []Level `yaml:"levels"`
}

// Level is one aggregate level of declared annotation occurrences.
type Level struct {
	Annotations []InstanceAnnotation `yaml:"annotations"`
}

// InstanceAnnotation is one declared occurrence with its literal values.
type InstanceAnnotation struct {
	Type   string         `yaml:"type"`
	Values map[string]any `yaml:"values,omitempty"`
}
