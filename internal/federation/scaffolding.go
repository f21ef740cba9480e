package federation

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vvakame/subgraphsdl/internal/log"
)

const scaffoldingSourceName = "federation_scaffolding.graphqls"

// ScaffoldingSource generates the federation types and query fields for the subgraph document doc.
// _Entity and _entities are generated only when entities is not empty.
// the query root type is created when doc doesn't define it.
func ScaffoldingSource(doc *ast.SchemaDocument, entities []string) *ast.Source {
	queryTypeName := "Query"
	for _, schemaDef := range append(append(ast.SchemaDefinitionList{}, doc.Schema...), doc.SchemaExtension...) {
		for _, opType := range schemaDef.OperationTypes {
			if opType.Operation == ast.Query {
				queryTypeName = opType.Type
			}
		}
	}

	queryKeyword := "type"
	if doc.Definitions.ForName(queryTypeName) != nil {
		queryKeyword = "extend type"
	}

	var sb strings.Builder
	sb.WriteString(heredoc.Doc(`
		scalar _Any

		type _Service {
		  sdl: String
		}
	`))
	if len(entities) != 0 {
		sb.WriteString(heredoc.Docf(`

			union _Entity = %s
		`, strings.Join(entities, " | ")))
	}

	sb.WriteString(fmt.Sprintf("\n%s %s {\n", queryKeyword, queryTypeName))
	if len(entities) != 0 {
		sb.WriteString("  _entities(representations: [_Any!]!): [_Entity]!\n")
	}
	sb.WriteString("  _service: _Service!\n}\n")

	return &ast.Source{
		Name:  scaffoldingSourceName,
		Input: sb.String(),
	}
}

// LoadSchema loads a subgraph schema from src and attaches the federation metadata of cfg.
// object types that have a key directive in cfg become members of _Entity.
func LoadSchema(ctx context.Context, src *ast.Source, cfg *Config) (*Schema, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := log.Debug(ctx)

	doc, err := parseSchema(src)
	if err != nil {
		return nil, err
	}

	entities := cfg.entityTypeNames(doc)
	scaffolding := ScaffoldingSource(doc, entities)
	logger.Info("add federation scaffolding", "source", src.Name, "entities", entities)

	schema, err := loadSchema(src, scaffolding)
	if err != nil {
		return nil, err
	}

	metadata, err := cfg.buildMetadata(schema)
	if err != nil {
		return nil, err
	}

	return &Schema{
		Schema:   schema,
		Context:  cfg.context(),
		Metadata: metadata,
	}, nil
}

func parseSchema(src *ast.Source) (*ast.SchemaDocument, error) {
	doc, gErr := parser.ParseSchema(src)
	if gErr != nil {
		return nil, gErr
	}
	return doc, nil
}

func loadSchema(sources ...*ast.Source) (*ast.Schema, error) {
	schema, gErr := gqlparser.LoadSchema(sources...)
	if gErr != nil {
		return nil, gErr
	}
	return schema, nil
}
