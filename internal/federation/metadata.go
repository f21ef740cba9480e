package federation

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Metadata holds the federation directives attached to schema members.
// a member without an entry has no federation directive capability.
type Metadata struct {
	Types  map[*ast.Definition][]*Directive
	Fields map[*ast.FieldDefinition][]*Directive
}

func NewMetadata() *Metadata {
	return &Metadata{
		Types:  make(map[*ast.Definition][]*Directive),
		Fields: make(map[*ast.FieldDefinition][]*Directive),
	}
}

func (m *Metadata) TypeDirectives(def *ast.Definition) []*Directive {
	if m == nil || def == nil {
		return nil
	}
	return m.Types[def]
}

func (m *Metadata) FieldDirectives(field *ast.FieldDefinition) []*Directive {
	if m == nil || field == nil {
		return nil
	}
	return m.Fields[field]
}

func (m *Metadata) setTypeDirective(def *ast.Definition, directive *Directive) {
	if m.Types == nil {
		m.Types = make(map[*ast.Definition][]*Directive)
	}
	m.Types[def] = append(m.Types[def], directive)
}

func (m *Metadata) setFieldDirective(field *ast.FieldDefinition, directive *Directive) {
	if m.Fields == nil {
		m.Fields = make(map[*ast.FieldDefinition][]*Directive)
	}
	m.Fields[field] = append(m.Fields[field], directive)
}

// AddTypeDirective attaches directive to typeName. directives are emitted in the order they are added.
func (m *Metadata) AddTypeDirective(schema *ast.Schema, typeName string, directive *Directive) error {
	def := schema.Types[typeName]
	if def == nil {
		return fmt.Errorf("type %s is not found in schema", typeName)
	}
	switch def.Kind {
	case ast.Object, ast.Interface:
	default:
		return fmt.Errorf("type %s is %s, federation directives are supported on OBJECT and INTERFACE", typeName, def.Kind)
	}

	m.setTypeDirective(def, directive)
	return nil
}

// AddFieldDirective attaches directive to typeName.fieldName. directives are emitted in the order they are added.
func (m *Metadata) AddFieldDirective(schema *ast.Schema, typeName, fieldName string, directive *Directive) error {
	def := schema.Types[typeName]
	if def == nil {
		return fmt.Errorf("type %s is not found in schema", typeName)
	}
	switch def.Kind {
	case ast.Object, ast.Interface:
	default:
		return fmt.Errorf("type %s is %s, federation directives are supported on fields of OBJECT and INTERFACE", typeName, def.Kind)
	}
	field := def.Fields.ForName(fieldName)
	if field == nil {
		return fmt.Errorf("field %s.%s is not found in schema", typeName, fieldName)
	}

	m.setFieldDirective(field, directive)
	return nil
}
