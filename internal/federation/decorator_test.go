package federation

import (
	"context"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	testlogr "github.com/go-logr/logr/testing"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/subgraphsdl/internal/log"
	"github.com/vvakame/subgraphsdl/internal/printer"
)

const productsSDL = `
scalar _Any

type _Service {
  sdl: String
}

union _Entity = Product

interface Node {
  id: ID!
}

type Product implements Node {
  id: ID!
  name: String @deprecated(reason: "use title")
  title: String
}

type Query {
  product(id: ID!): Product
  _entities(representations: [_Any!]!): [_Entity]!
  products: [Product!]!
  _service: _Service!
}
`

const scaffoldingOnlySDL = `
scalar _Any

type _Service {
  sdl: String
}

union _Entity = Product

type Product {
  id: ID!
}

type Query {
  _entities(representations: [_Any!]!): [_Entity]!
  _service: _Service!
}
`

func testContext(t *testing.T) context.Context {
	return log.WithLogger(context.Background(), testlogr.NewTestLogger(t))
}

func mustLoadSchema(t *testing.T, sdl string) *ast.Schema {
	t.Helper()

	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  "schema.graphqls",
		Input: sdl,
	})
	if err != nil {
		t.Fatal(err)
	}
	return schema
}

func stringValue(s string) *ast.Value {
	return &ast.Value{Kind: ast.StringValue, Raw: s}
}

// inaccessible and tag(name: "v1")
func testDirectives() []*Directive {
	return []*Directive{
		{Name: "inaccessible"},
		{Name: "tag", Arguments: []*DirectiveArgument{{Name: "name", Values: stringValue("v1")}}},
	}
}

func directiveNames(directives ast.DirectiveList) string {
	names := make([]string, 0, len(directives))
	for _, directive := range directives {
		names = append(names, directive.Name)
	}
	return strings.Join(names, ",")
}

func definitionNames(defs ast.DefinitionList) string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return strings.Join(names, ",")
}

func fieldNames(def *ast.Definition) string {
	names := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		names = append(names, field.Name)
	}
	return strings.Join(names, ",")
}

func TestBuildDocument_filterFederationTypes(t *testing.T) {
	for _, version := range []string{"", "1", "2", "2.3"} {
		t.Run("version="+version, func(t *testing.T) {
			ctx := testContext(t)
			schema := &Schema{
				Schema:  mustLoadSchema(t, productsSDL),
				Context: &Context{Version: version},
			}

			doc := BuildDocument(ctx, schema)

			if v := definitionNames(doc.Definitions); v != "Node,Product,Query" {
				t.Errorf("unexpected definitions: %s", v)
			}
			for _, def := range doc.Definitions {
				if IsFederationType(def.Name) {
					t.Errorf("%s must not be printed", def.Name)
				}
			}

			query := doc.Definitions.ForName("Query")
			if v := fieldNames(query); v != "product,products" {
				t.Errorf("unexpected query fields: %s", v)
			}
		})
	}
}

func TestBuildDocument_omitScaffoldingOnlyQuery(t *testing.T) {
	ctx := testContext(t)
	schema := &Schema{
		Schema:  mustLoadSchema(t, scaffoldingOnlySDL),
		Context: &Context{Version: "2"},
	}

	doc := BuildDocument(ctx, schema)

	if v := definitionNames(doc.Definitions); v != "Product" {
		t.Errorf("unexpected definitions: %s", v)
	}
}

func TestBuildDocument_queryRootIdentity(t *testing.T) {
	ctx := testContext(t)
	schema := &Schema{
		Schema: mustLoadSchema(t, heredoc.Doc(`
			schema {
			  query: RootQuery
			}

			type _Service {
			  sdl: String
			}

			type Query {
			  _service: _Service
			}

			type RootQuery {
			  hello: String
			  _service: _Service!
			}
		`)),
	}

	doc := BuildDocument(ctx, schema)

	if v := definitionNames(doc.Definitions); v != "Query,RootQuery" {
		t.Fatalf("unexpected definitions: %s", v)
	}
	// Query is not the query root here, federation fields are kept.
	if v := fieldNames(doc.Definitions.ForName("Query")); v != "_service" {
		t.Errorf("unexpected fields of Query: %s", v)
	}
	if v := fieldNames(doc.Definitions.ForName("RootQuery")); v != "hello" {
		t.Errorf("unexpected fields of RootQuery: %s", v)
	}
}

func TestBuildDocument_mergeDirectives(t *testing.T) {
	tests := []struct {
		name     string
		context  *Context
		expected string
	}{
		{"v2", &Context{Version: "2", LinkNamespace: "federation"}, "inaccessible,federation__tag"},
		{"v2 custom namespace", &Context{Version: "2", LinkNamespace: "fed"}, "inaccessible,fed__tag"},
		{"v1", &Context{Version: "1", LinkNamespace: "federation"}, "inaccessible,tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			astSchema := mustLoadSchema(t, productsSDL)

			metadata := NewMetadata()
			for _, directive := range testDirectives() {
				if err := metadata.AddTypeDirective(astSchema, "Product", directive); err != nil {
					t.Fatal(err)
				}
				if err := metadata.AddTypeDirective(astSchema, "Node", directive); err != nil {
					t.Fatal(err)
				}
				if err := metadata.AddFieldDirective(astSchema, "Product", "title", directive); err != nil {
					t.Fatal(err)
				}
				if err := metadata.AddFieldDirective(astSchema, "Product", "name", directive); err != nil {
					t.Fatal(err)
				}
			}

			doc := BuildDocument(ctx, &Schema{
				Schema:   astSchema,
				Context:  tt.context,
				Metadata: metadata,
			})

			product := doc.Definitions.ForName("Product")
			if v := directiveNames(product.Directives); v != tt.expected {
				t.Errorf("unexpected directives on Product: %s", v)
			}
			if v := directiveNames(doc.Definitions.ForName("Node").Directives); v != tt.expected {
				t.Errorf("unexpected directives on Node: %s", v)
			}
			if v := directiveNames(product.Fields.ForName("title").Directives); v != tt.expected {
				t.Errorf("unexpected directives on Product.title: %s", v)
			}
			// original directives come first
			if v := directiveNames(product.Fields.ForName("name").Directives); v != "deprecated,"+tt.expected {
				t.Errorf("unexpected directives on Product.name: %s", v)
			}
			if v := directiveNames(product.Fields.ForName("id").Directives); v != "" {
				t.Errorf("unexpected directives on Product.id: %s", v)
			}

			tag := product.Directives[1]
			if len(tag.Arguments) != 1 || tag.Arguments[0].Name != "name" {
				t.Fatalf("unexpected arguments: %+v", tag.Arguments)
			}
			if v := tag.Arguments[0].Value; v.Kind != ast.StringValue || v.Raw != "v1" {
				t.Errorf("unexpected argument value: %+v", v)
			}

			// schema members are read only
			if v := directiveNames(astSchema.Types["Product"].Directives); v != "" {
				t.Errorf("schema is mutated: %s", v)
			}
			if v := directiveNames(astSchema.Types["Product"].Fields.ForName("name").Directives); v != "deprecated" {
				t.Errorf("schema is mutated: %s", v)
			}
		})
	}
}

func TestPrintSDL_directives(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected []string
		unwanted []string
	}{
		{
			name:     "v2",
			version:  "2",
			expected: []string{"@inaccessible", `@federation__tag(name: "v1")`},
			unwanted: []string{"@federation__inaccessible", "@tag("},
		},
		{
			name:     "v1",
			version:  "1",
			expected: []string{"@inaccessible", `@tag(name: "v1")`},
			unwanted: []string{"federation__", "extend schema"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			astSchema := mustLoadSchema(t, productsSDL)

			metadata := NewMetadata()
			for _, directive := range testDirectives() {
				if err := metadata.AddFieldDirective(astSchema, "Product", "title", directive); err != nil {
					t.Fatal(err)
				}
			}

			sdl := PrintSDL(ctx, &Schema{
				Schema:   astSchema,
				Context:  &Context{Version: tt.version},
				Metadata: metadata,
			})
			t.Log(sdl)

			for _, want := range tt.expected {
				if !strings.Contains(sdl, want) {
					t.Errorf("%s is not contained", want)
				}
			}
			for _, unwanted := range tt.unwanted {
				if strings.Contains(sdl, unwanted) {
					t.Errorf("%s must not be printed", unwanted)
				}
			}
			if strings.Index(sdl, "@inaccessible") > strings.Index(sdl, "tag(") {
				t.Errorf("directive order is not kept")
			}
		})
	}
}

func TestBuildDocument_noDirectives(t *testing.T) {
	const sdl = `
		interface Node {
		  id: ID!
		}

		type Product implements Node {
		  id: ID!
		  name: String @deprecated
		}

		type Query {
		  product: Product
		}
	`

	ctx := testContext(t)
	astSchema := mustLoadSchema(t, sdl)
	expected := printer.Print(printer.New(astSchema).Document())

	metadata := NewMetadata()
	metadata.Types[astSchema.Types["Product"]] = []*Directive{}
	metadata.Fields[astSchema.Types["Product"].Fields.ForName("name")] = nil

	for _, m := range []*Metadata{nil, NewMetadata(), metadata} {
		actual := printer.Print(BuildDocument(ctx, &Schema{
			Schema:   astSchema,
			Context:  &Context{Version: "1"},
			Metadata: m,
		}))
		if actual != expected {
			t.Errorf("document is changed without directives:\n%s\n%s", expected, actual)
		}
	}
}
