package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

const serviceSDLQuery = `{ _service { sdl }}`

var ErrEmptySDL = errors.New("sdl fetch failed")

type statusError struct {
	StatusCode int
}

func (err *statusError) Error() string {
	return fmt.Sprintf("unexpected response code: %d", err.StatusCode)
}

// FetchSDL fetches the subgraph SDL from ds by `{ _service { sdl }}`.
func FetchSDL(ctx context.Context, ds DataSource) (string, error) {
	oc, err := newOperationContext(serviceSDLQuery, "", nil)
	if err != nil {
		return "", err
	}

	resp := ds.Process(ctx, oc)
	if len(resp.Errors) != 0 {
		return "", resp.Errors
	}

	type Resp struct {
		Service struct {
			SDL string `json:"sdl"`
		} `json:"_service"`
	}

	v := &Resp{}
	err = json.Unmarshal(resp.Data, v)
	if err != nil {
		return "", gqlerror.List{gqlerror.Errorf("%s", err.Error())}
	}

	if v.Service.SDL == "" {
		return "", ErrEmptySDL
	}

	return v.Service.SDL, nil
}

func newOperationContext(query, operationName string, variables map[string]interface{}) (*graphql.OperationContext, error) {
	queryDoc, gErr := parser.ParseQuery(&ast.Source{
		Input: query,
	})
	if gErr != nil {
		return nil, toGQLErrors(gErr)
	}

	operation := queryDoc.Operations.ForName(operationName)
	if operation == nil {
		return nil, gqlerror.List{gqlerror.Errorf("operation %s not found", operationName)}
	}

	if variables == nil {
		variables = make(map[string]interface{})
	}

	return &graphql.OperationContext{
		RawQuery:      query,
		Variables:     variables,
		OperationName: operationName,
		Doc:           queryDoc,
		Operation:     operation,
	}, nil
}

func toGQLErrors(err error) gqlerror.List {
	var list gqlerror.List
	if errors.As(err, &list) {
		return list
	}
	var gErr *gqlerror.Error
	if errors.As(err, &gErr) {
		return gqlerror.List{gErr}
	}
	return gqlerror.List{gqlerror.Errorf("%s", err.Error())}
}
