package printer

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

type ObjectTypeNodeBuilder func(def *ast.Definition) *ast.Definition
type InterfaceTypeNodeBuilder func(def *ast.Definition) *ast.Definition
type FieldNodeBuilder func(field *ast.FieldDefinition) *ast.FieldDefinition
type TypeDefinitionNodesBuilder func(types ast.DefinitionList) ast.DefinitionList

// Builders holds the overridable node construction steps of a Printer.
// Every builder returns a fresh node; schema members are never handed out as-is.
type Builders struct {
	ObjectTypeNode      ObjectTypeNodeBuilder
	InterfaceTypeNode   InterfaceTypeNodeBuilder
	FieldNode           FieldNodeBuilder
	TypeDefinitionNodes TypeDefinitionNodesBuilder
}

// Decorator wraps the builders below it. A decorator calls through to base
// to get the undecorated result and post-processes it.
type Decorator func(base Builders) Builders

type Printer struct {
	schema   *ast.Schema
	builders Builders
}

func New(schema *ast.Schema, decorators ...Decorator) *Printer {
	p := &Printer{schema: schema}

	builders := Builders{
		ObjectTypeNode:      p.buildObjectTypeNode,
		InterfaceTypeNode:   p.buildInterfaceTypeNode,
		FieldNode:           p.buildFieldNode,
		TypeDefinitionNodes: p.buildTypeDefinitionNodes,
	}
	for _, decorator := range decorators {
		builders = decorator(builders)
	}
	p.builders = builders

	return p
}

func (p *Printer) Schema() *ast.Schema {
	return p.schema
}

func (p *Printer) RootTypeForOperation(op ast.Operation) *ast.Definition {
	return RootTypeForOperation(p.schema, op)
}

func RootTypeForOperation(schema *ast.Schema, op ast.Operation) *ast.Definition {
	if schema == nil {
		return nil
	}
	switch op {
	case ast.Query:
		return schema.Query
	case ast.Mutation:
		return schema.Mutation
	case ast.Subscription:
		return schema.Subscription
	default:
		return nil
	}
}

func (p *Printer) Document() *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}

	if schemaDef := p.buildSchemaNode(); schemaDef != nil {
		doc.Schema = ast.SchemaDefinitionList{schemaDef}
	}

	directiveNames := make([]string, 0, len(p.schema.Directives))
	for name, directive := range p.schema.Directives {
		if isBuiltInDirective(directive) {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		doc.Directives = append(doc.Directives, p.schema.Directives[name])
	}

	typeNames := make([]string, 0, len(p.schema.Types))
	for name, def := range p.schema.Types {
		if def.BuiltIn || IsIntrospectionName(name) {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	types := make(ast.DefinitionList, 0, len(typeNames))
	for _, name := range typeNames {
		types = append(types, p.schema.Types[name])
	}

	doc.Definitions = p.builders.TypeDefinitionNodes(types)

	return doc
}

// schema definition is only needed when the root operation types are not the default names.
func (p *Printer) buildSchemaNode() *ast.SchemaDefinition {
	roots := []struct {
		op          ast.Operation
		def         *ast.Definition
		defaultName string
	}{
		{ast.Query, p.schema.Query, "Query"},
		{ast.Mutation, p.schema.Mutation, "Mutation"},
		{ast.Subscription, p.schema.Subscription, "Subscription"},
	}

	customized := false
	var operationTypes ast.OperationTypeDefinitionList
	for _, root := range roots {
		if root.def == nil {
			continue
		}
		if root.def.Name != root.defaultName {
			customized = true
		}
		operationTypes = append(operationTypes, &ast.OperationTypeDefinition{
			Operation: root.op,
			Type:      root.def.Name,
		})
	}
	if !customized {
		return nil
	}

	return &ast.SchemaDefinition{
		OperationTypes: operationTypes,
	}
}

func (p *Printer) buildTypeDefinitionNodes(types ast.DefinitionList) ast.DefinitionList {
	nodes := make(ast.DefinitionList, 0, len(types))
	for _, def := range types {
		nodes = append(nodes, p.buildTypeDefinitionNode(def))
	}
	return nodes
}

func (p *Printer) buildTypeDefinitionNode(def *ast.Definition) *ast.Definition {
	switch def.Kind {
	case ast.Object:
		return p.builders.ObjectTypeNode(def)
	case ast.Interface:
		return p.builders.InterfaceTypeNode(def)
	case ast.InputObject:
		node := copyDefinition(def)
		node.Fields = make(ast.FieldList, 0, len(def.Fields))
		for _, field := range def.Fields {
			node.Fields = append(node.Fields, copyFieldDefinition(field))
		}
		return node
	default:
		// scalar, enum, union
		node := copyDefinition(def)
		node.EnumValues = append(ast.EnumValueList(nil), def.EnumValues...)
		node.Types = append([]string(nil), def.Types...)
		return node
	}
}

func (p *Printer) buildObjectTypeNode(def *ast.Definition) *ast.Definition {
	return p.buildFieldsOwnerNode(def)
}

func (p *Printer) buildInterfaceTypeNode(def *ast.Definition) *ast.Definition {
	return p.buildFieldsOwnerNode(def)
}

func (p *Printer) buildFieldsOwnerNode(def *ast.Definition) *ast.Definition {
	node := copyDefinition(def)
	node.Interfaces = append([]string(nil), def.Interfaces...)
	node.Fields = make(ast.FieldList, 0, len(def.Fields))
	for _, field := range def.Fields {
		if IsIntrospectionName(field.Name) {
			continue
		}
		node.Fields = append(node.Fields, p.builders.FieldNode(field))
	}
	return node
}

func (p *Printer) buildFieldNode(field *ast.FieldDefinition) *ast.FieldDefinition {
	return copyFieldDefinition(field)
}

func copyDefinition(def *ast.Definition) *ast.Definition {
	copied := *def
	copied.Directives = append(ast.DirectiveList(nil), def.Directives...)
	copied.Interfaces = nil
	copied.Fields = nil
	copied.Types = nil
	copied.EnumValues = nil
	return &copied
}

func copyFieldDefinition(field *ast.FieldDefinition) *ast.FieldDefinition {
	copied := *field
	copied.Arguments = append(ast.ArgumentDefinitionList(nil), field.Arguments...)
	copied.Directives = append(ast.DirectiveList(nil), field.Directives...)
	return &copied
}

func isBuiltInDirective(directive *ast.DirectiveDefinition) bool {
	return directive.Position != nil && directive.Position.Src != nil && directive.Position.Src.BuiltIn
}

func IsIntrospectionName(name string) bool {
	return strings.HasPrefix(name, "__")
}

func Fprint(w io.Writer, doc *ast.SchemaDocument) {
	formatter.NewFormatter(w).FormatSchemaDocument(doc)
}

func Print(doc *ast.SchemaDocument) string {
	var buf bytes.Buffer
	Fprint(&buf, doc)
	return buf.String()
}
