package federation

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/subgraphsdl/internal/log"
	"github.com/vvakame/subgraphsdl/internal/printer"
)

type decorator struct {
	ctx       context.Context
	schema    *Schema
	queryType *ast.Definition
}

// NewDecorator returns a printer.Decorator that hides federation scaffolding
// and merges federation directives into object, interface and field nodes.
func NewDecorator(ctx context.Context, schema *Schema) printer.Decorator {
	d := &decorator{
		ctx:    ctx,
		schema: schema,
	}

	return func(base printer.Builders) printer.Builders {
		return printer.Builders{
			ObjectTypeNode: func(def *ast.Definition) *ast.Definition {
				return d.objectTypeNode(def, base.ObjectTypeNode(def))
			},
			InterfaceTypeNode: func(def *ast.Definition) *ast.Definition {
				return d.mergeTypeDirectives(base.InterfaceTypeNode(def), def)
			},
			FieldNode: func(field *ast.FieldDefinition) *ast.FieldDefinition {
				return d.mergeFieldDirectives(base.FieldNode(field), field)
			},
			TypeDefinitionNodes: func(types ast.DefinitionList) ast.DefinitionList {
				return base.TypeDefinitionNodes(d.filterTypeDefinitions(types))
			},
		}
	}
}

func (d *decorator) isQueryType(def *ast.Definition) bool {
	return def != nil && def == d.schema.RootTypeForOperation(ast.Query)
}

func (d *decorator) objectTypeNode(def *ast.Definition, node *ast.Definition) *ast.Definition {
	if d.isQueryType(def) {
		node = printer.WithoutFields(node, func(field *ast.FieldDefinition) bool {
			return IsFederationQueryField(field.Name)
		})
	}

	return d.mergeTypeDirectives(node, def)
}

func (d *decorator) filterTypeDefinitions(types ast.DefinitionList) ast.DefinitionList {
	logger := log.Debug(d.ctx)

	filtered := make(ast.DefinitionList, 0, len(types))
	for _, def := range types {
		if d.isQueryType(def) {
			if onlyFederationQueryFields(def) {
				logger.Info("omit query root type, it has only federation fields", "type", def.Name)
				continue
			}
		} else if IsFederationType(def.Name) {
			logger.Info("omit federation type", "type", def.Name)
			continue
		}
		filtered = append(filtered, def)
	}

	return filtered
}

// onlyFederationQueryFields reports whether all the fields of def are federation query fields.
// introspection fields injected by gqlparser are not counted.
func onlyFederationQueryFields(def *ast.Definition) bool {
	for _, field := range def.Fields {
		if printer.IsIntrospectionName(field.Name) {
			continue
		}
		if !IsFederationQueryField(field.Name) {
			return false
		}
	}
	return true
}

func (d *decorator) mergeTypeDirectives(node *ast.Definition, def *ast.Definition) *ast.Definition {
	for _, directive := range d.schema.Metadata.TypeDirectives(def) {
		node = printer.WithDirective(node, d.directiveNode(directive))
	}
	return node
}

func (d *decorator) mergeFieldDirectives(node *ast.FieldDefinition, field *ast.FieldDefinition) *ast.FieldDefinition {
	for _, directive := range d.schema.Metadata.FieldDirectives(field) {
		node = printer.FieldWithDirective(node, d.directiveNode(directive))
	}
	return node
}

func (d *decorator) directiveNode(directive *Directive) *ast.Directive {
	name := d.schema.Context.ResolveDirectiveName(directive.Name)
	return buildDirectiveNode(name, directive.Arguments)
}
