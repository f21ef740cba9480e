package subgraph

import (
	"context"
	"encoding/json"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/subgraphsdl/internal/federation"
	"github.com/vvakame/subgraphsdl/internal/log"
)

type DataSource interface {
	Process(ctx context.Context, oc *graphql.OperationContext) *graphql.Response
}

var _ DataSource = (*ServiceDataSource)(nil)

// ServiceDataSource answers `{ _service { sdl } }` with a printed subgraph SDL.
type ServiceDataSource struct {
	QueryTypeName string
	SDL           string
}

func NewServiceDataSource(ctx context.Context, schema *federation.Schema) *ServiceDataSource {
	queryTypeName := "Query"
	if def := schema.RootTypeForOperation(ast.Query); def != nil {
		queryTypeName = def.Name
	}

	return &ServiceDataSource{
		QueryTypeName: queryTypeName,
		SDL:           federation.PrintSDL(ctx, schema),
	}
}

func (ds *ServiceDataSource) Process(ctx context.Context, oc *graphql.OperationContext) *graphql.Response {
	ctx = graphql.WithResponseContext(ctx, graphql.DefaultErrorPresenter, graphql.DefaultRecover)

	if oc.Operation == nil || oc.Operation.Operation != ast.Query {
		graphql.AddErrorf(ctx, "only query operation is supported")
		return &graphql.Response{Errors: graphql.GetErrors(ctx)}
	}

	queryTypeName := ds.QueryTypeName
	if queryTypeName == "" {
		queryTypeName = "Query"
	}

	data := make(map[string]interface{})
	for _, selection := range oc.Operation.SelectionSet {
		field, ok := selection.(*ast.Field)
		if !ok {
			// gateways query `_service { sdl }` with plain fields only.
			graphql.AddErrorf(ctx, "fragments are not supported")
			continue
		}

		switch field.Name {
		case "__typename":
			data[responseKey(field)] = queryTypeName
		case "_service":
			data[responseKey(field)] = ds.resolveService(ctx, field)
		default:
			graphql.AddErrorf(ctx, `Cannot query field "%s" on type "%s".`, field.Name, queryTypeName)
		}
	}

	if gErrs := graphql.GetErrors(ctx); len(gErrs) != 0 {
		return &graphql.Response{Errors: gErrs}
	}

	b, err := json.Marshal(data)
	if err != nil {
		graphql.AddError(ctx, err)
		return &graphql.Response{Errors: graphql.GetErrors(ctx)}
	}

	log.Debug(ctx).Info("served subgraph sdl", "size", len(ds.SDL))

	return &graphql.Response{Data: b}
}

func (ds *ServiceDataSource) resolveService(ctx context.Context, field *ast.Field) map[string]interface{} {
	service := make(map[string]interface{})
	for _, selection := range field.SelectionSet {
		subField, ok := selection.(*ast.Field)
		if !ok {
			graphql.AddErrorf(ctx, "fragments are not supported")
			continue
		}

		switch subField.Name {
		case "__typename":
			service[responseKey(subField)] = "_Service"
		case "sdl":
			service[responseKey(subField)] = ds.SDL
		default:
			graphql.AddErrorf(ctx, `Cannot query field "%s" on type "_Service".`, subField.Name)
		}
	}
	return service
}

func responseKey(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}
