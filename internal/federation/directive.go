package federation

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// Directive is a federation directive attached to a type or a field.
// it is produced upstream and only read while printing.
type Directive struct {
	Name      string
	Arguments []*DirectiveArgument
}

type DirectiveArgument struct {
	Name   string
	Values *ast.Value
}

// ResolveDirectiveName returns the name emitted for a federation directive.
//
//	federation 1: key -> key
//	federation 2: key -> federation__key, inaccessible -> inaccessible
func ResolveDirectiveName(name string, isFederationV2 bool, linkNamespace string) string {
	if !isFederationV2 || name == InaccessibleDirective {
		return name
	}
	return linkNamespace + "__" + name
}

// buildDirectiveNode builds a directive occurrence, argument values are carried verbatim.
func buildDirectiveNode(name string, arguments []*DirectiveArgument) *ast.Directive {
	args := make(ast.ArgumentList, 0, len(arguments))
	for _, arg := range arguments {
		args = append(args, &ast.Argument{
			Name:     arg.Name,
			Value:    arg.Values,
			Position: blankPos,
		})
	}

	return &ast.Directive{
		Name:      name,
		Arguments: args,
		Position:  blankPos,
	}
}

// for formatter
var blankPos = &ast.Position{
	Src: &ast.Source{
		BuiltIn: false,
	},
}
