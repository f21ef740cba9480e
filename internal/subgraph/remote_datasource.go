package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
)

var _ DataSource = (*RemoteDataSource)(nil)

// RemoteDataSource sends operations to a subgraph over HTTP.
type RemoteDataSource struct {
	URL string

	Client *http.Client
}

type rawParams struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

func (ds *RemoteDataSource) Process(ctx context.Context, oc *graphql.OperationContext) *graphql.Response {
	ctx = graphql.WithResponseContext(ctx, graphql.DefaultErrorPresenter, graphql.DefaultRecover)

	gqlResp, err := ds.post(ctx, &rawParams{
		Query:         oc.RawQuery,
		OperationName: oc.OperationName,
		Variables:     oc.Variables,
	})
	if err != nil {
		graphql.AddError(ctx, err)
		return &graphql.Response{Errors: graphql.GetErrors(ctx)}
	}

	return gqlResp
}

func (ds *RemoteDataSource) post(ctx context.Context, params *rawParams) (*graphql.Response, error) {
	hc := ds.Client
	if hc == nil {
		hc = http.DefaultClient
	}

	b, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ds.URL, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{StatusCode: resp.StatusCode}
	}

	gqlResp := &graphql.Response{}
	err = json.Unmarshal(b, gqlResp)
	if err != nil {
		return nil, err
	}

	return gqlResp, nil
}
