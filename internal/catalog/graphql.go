package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/jeanpaul/shelf/internal/book"
)

//go:embed schema.graphql
var schemaSDL string

// BooksQuery is the one request the catalog service answers.
const BooksQuery = `query Books {
  books {
    author
    coverPhotoURL
    readingLevel
    title
  }
}`

// GraphQLClient fetches the catalog from a GraphQL endpoint.
type GraphQLClient struct {
	endpoint   string
	query      string
	operation  string
	httpClient *http.Client
	headers    http.Header
}

type ClientOption func(*GraphQLClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *GraphQLClient) { g.httpClient = c }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(g *GraphQLClient) {
		if d > 0 {
			g.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithHeader adds a header (e.g. Authorization) to every request.
func WithHeader(key, value string) ClientOption {
	return func(g *GraphQLClient) { g.headers.Set(key, value) }
}

// NewGraphQLClient checks BooksQuery against the catalog schema and returns
// a client for endpoint.
func NewGraphQLClient(endpoint string, opts ...ClientOption) (*GraphQLClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("catalog: graphql endpoint is required")
	}

	op, err := checkQuery(BooksQuery)
	if err != nil {
		return nil, err
	}

	g := &GraphQLClient{
		endpoint:   endpoint,
		query:      BooksQuery,
		operation:  op,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    http.Header{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// checkQuery validates query against the embedded schema and returns the
// operation name.
func checkQuery(query string) (string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return "", fmt.Errorf("catalog: load schema: %w", err)
	}
	doc, errs := gqlparser.LoadQuery(schema, query)
	if len(errs) > 0 {
		return "", fmt.Errorf("catalog: invalid query: %w", errs)
	}
	if len(doc.Operations) != 1 {
		return "", fmt.Errorf("catalog: expected one operation, got %d", len(doc.Operations))
	}
	return doc.Operations[0].Name, nil
}

func (g *GraphQLClient) Name() string { return g.endpoint }

type graphqlRequest struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

type graphqlResponse struct {
	Data *struct {
		Books []book.Record `json:"books"`
	} `json:"data"`
	Errors gqlerror.List `json:"errors"`
}

// Fetch runs BooksQuery. Partial data alongside errors is treated as a
// failure.
func (g *GraphQLClient) Fetch(ctx context.Context) ([]book.Record, error) {
	body, err := json.Marshal(graphqlRequest{Query: g.query, OperationName: g.operation})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(g.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range g.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, unavailable(g.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, unavailable(g.Name(), &statusError{Code: resp.StatusCode, Body: string(data)})
	}

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, unavailable(g.Name(), fmt.Errorf("decode response: %w", err))
	}
	if len(out.Errors) > 0 {
		return nil, unavailable(g.Name(), out.Errors)
	}
	if out.Data == nil {
		return nil, unavailable(g.Name(), fmt.Errorf("response has no data"))
	}
	if err := validate(out.Data.Books); err != nil {
		return nil, unavailable(g.Name(), err)
	}
	return out.Data.Books, nil
}
