package subgraph

import (
	"encoding/json"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/subgraphsdl/internal/log"
)

// Handler serves ds as a GraphQL over HTTP endpoint. only POST with JSON body is accepted.
func Handler(ds DataSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		params := &rawParams{}
		err := json.NewDecoder(r.Body).Decode(params)
		if err != nil {
			writeResponse(w, &graphql.Response{
				Errors: gqlerror.List{gqlerror.Errorf("json request body could not be decoded: %s", err.Error())},
			})
			return
		}

		oc, err := newOperationContext(params.Query, params.OperationName, params.Variables)
		if err != nil {
			writeResponse(w, &graphql.Response{Errors: toGQLErrors(err)})
			return
		}

		log.Debug(ctx).Info("process operation", "operationName", params.OperationName)

		writeResponse(w, ds.Process(ctx, oc))
	})
}

func writeResponse(w http.ResponseWriter, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
