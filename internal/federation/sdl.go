package federation

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/subgraphsdl/internal/printer"
)

// Schema is a subgraph schema with its federation configuration and directive metadata.
type Schema struct {
	Schema   *ast.Schema
	Context  *Context
	Metadata *Metadata
}

func (s *Schema) RootTypeForOperation(op ast.Operation) *ast.Definition {
	return printer.RootTypeForOperation(s.Schema, op)
}

// BuildDocument builds the subgraph-visible document of schema.
func BuildDocument(ctx context.Context, schema *Schema) *ast.SchemaDocument {
	return printer.New(schema.Schema, NewDecorator(ctx, schema)).Document()
}

// PrintSDL prints the subgraph SDL, this is the value of `_service { sdl }`.
func PrintSDL(ctx context.Context, schema *Schema) string {
	var buf bytes.Buffer
	if schema.Context.IsFederationV2() {
		buf.WriteString(linkHeader(schema.Context))
	}
	printer.Fprint(&buf, BuildDocument(ctx, schema))

	return buf.String()
}

// unnamespaced directives must be imported explicitly.
var linkImports = []string{InaccessibleDirective}

func linkHeader(c *Context) string {
	var as string
	if ns := c.Namespace(); ns != DefaultLinkNamespace {
		as = fmt.Sprintf(`, as: "%s"`, ns)
	}

	imports := make([]string, 0, len(linkImports))
	for _, name := range linkImports {
		imports = append(imports, fmt.Sprintf(`"@%s"`, name))
	}

	return heredoc.Docf(`
		extend schema
		  @link(url: "%s"%s, import: [%s])

	`, FederationSpecURL, as, strings.Join(imports, ", "))
}
