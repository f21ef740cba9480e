package printer

import "github.com/vektah/gqlparser/v2/ast"

// NOTE nodes are treated as immutable values.
// the helpers below copy the node and change one thing, other holders of the original node see no change.

// WithoutFields returns a copy of def without fields that drop reports true.
// the relative order of remaining fields is kept.
func WithoutFields(def *ast.Definition, drop func(field *ast.FieldDefinition) bool) *ast.Definition {
	fields := make(ast.FieldList, 0, len(def.Fields))
	for _, field := range def.Fields {
		if drop(field) {
			continue
		}
		fields = append(fields, field)
	}
	if len(fields) == len(def.Fields) {
		return def
	}

	copied := *def
	copied.Fields = fields
	return &copied
}

// WithDirective returns a copy of def with directive appended to the end of its directives.
func WithDirective(def *ast.Definition, directive *ast.Directive) *ast.Definition {
	copied := *def
	copied.Directives = appendDirective(def.Directives, directive)
	return &copied
}

// FieldWithDirective returns a copy of field with directive appended to the end of its directives.
func FieldWithDirective(field *ast.FieldDefinition, directive *ast.Directive) *ast.FieldDefinition {
	copied := *field
	copied.Directives = appendDirective(field.Directives, directive)
	return &copied
}

func appendDirective(directives ast.DirectiveList, directive *ast.Directive) ast.DirectiveList {
	newDirectives := make(ast.DirectiveList, 0, len(directives)+1)
	newDirectives = append(newDirectives, directives...)
	return append(newDirectives, directive)
}
