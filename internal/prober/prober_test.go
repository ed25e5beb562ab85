package prober

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/moamenhredeen/oasprobe/internal/generator"
	"github.com/moamenhredeen/oasprobe/internal/models"
	"github.com/moamenhredeen/oasprobe/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersSpec = `{
  "swagger": "2.0",
  "info": {"title": "Users", "version": "1.0.0"},
  "host": "%s",
  "basePath": "/api",
  "paths": {
    "/users/{id}": {
      "get": {
        "parameters": [
          {"name": "id", "in": "path", "required": true, "type": "integer"},
          {"name": "filter", "in": "query", "type": "string"}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/pets": {
      "parameters": [
        {"name": "X-Tenant", "in": "header", "type": "string"}
      ],
      "post": {
        "parameters": [
          {"name": "pet", "in": "body", "schema": {"type": "object"}}
        ],
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

// createMockServer serves the users document and the API it describes
func createMockServer() *httptest.Server {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/swagger.json":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, usersSpec, strings.TrimPrefix(server.URL, "http://"))
		case strings.HasPrefix(r.URL.Path, "/api/users/") && r.Method == http.MethodGet:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id":1,"name":"leaked"}`))
		case r.URL.Path == "/api/pets" && r.Method == http.MethodPost:
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("forbidden"))
		default:
			http.NotFound(w, r)
		}
	}))
	return server
}

func newTestProber(seed int64) *Prober {
	return NewProber(
		parser.NewFetcher(time.Second),
		NewRequestBuilder(generator.NewSeeded(seed), "http"),
		NewExecutor(time.Second),
	)
}

func TestIntegrationFullFlow(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	report := newTestProber(1).ProbeDocuments(context.Background(), []string{server.URL + "/swagger.json"}, nil)
	require.Len(t, report.Results, 2)
	assert.Equal(t, 0, report.FetchFailures)

	get := report.Results[0]
	assert.Equal(t, "GET", get.Method)
	pattern := regexp.MustCompile(`^http://127\.0\.0\.1:\d+/api/users/\d+\?filter=[A-Za-z]{10}$`)
	assert.Regexp(t, pattern, get.URL)
	assert.Equal(t, "200", get.Status.String())
	assert.Equal(t, `{"id":1,"name":"leaked"}`, get.Body)
	assert.Contains(t, get.PathParams, "id")
	assert.Contains(t, get.QueryParams, "filter")

	post := report.Results[1]
	assert.Equal(t, "POST", post.Method)
	assert.Equal(t, server.URL+"/api/pets", post.URL)
	assert.Empty(t, post.PathParams)
	assert.Empty(t, post.QueryParams)
	assert.Equal(t, "403", post.Status.String())
	assert.Equal(t, "forbidden", post.Body)
}

func TestIntegrationFetchFailure(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	missing := server.URL + "/missing.json"
	report := newTestProber(1).ProbeDocuments(context.Background(), []string{missing, server.URL + "/swagger.json"}, nil)

	require.Len(t, report.Results, 3)
	row := report.Results[0]
	assert.Equal(t, models.MethodFetch, row.Method)
	assert.Equal(t, missing, row.URL)
	assert.Equal(t, "Error", row.Status.String())
	assert.Contains(t, row.Body, "404")

	// The failed document does not stop the next one
	assert.Equal(t, "GET", report.Results[1].Method)
	assert.Equal(t, 1, report.FetchFailures)
	assert.Equal(t, 2, report.Probed)
}

func TestIntegrationOperationFailureContinues(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadHost := strings.TrimPrefix(dead.URL, "http://")
	dead.Close()

	docServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, usersSpec, deadHost)
	}))
	defer docServer.Close()

	report := newTestProber(1).ProbeDocuments(context.Background(), []string{docServer.URL}, nil)
	require.Len(t, report.Results, 2)
	for _, row := range report.Results {
		assert.Equal(t, "Error", row.Status.String())
		assert.NotEmpty(t, row.Body)
	}
	assert.Equal(t, 2, report.Failed)
}

func TestIntegrationSeededRunsMatch(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	urls := []string{server.URL + "/swagger.json"}
	first := newTestProber(42).ProbeDocuments(context.Background(), urls, nil)
	second := newTestProber(42).ProbeDocuments(context.Background(), urls, nil)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].URL, second.Results[i].URL)
		assert.Equal(t, first.Results[i].PathParams.JSON(), second.Results[i].PathParams.JSON())
		assert.Equal(t, first.Results[i].QueryParams.JSON(), second.Results[i].QueryParams.JSON())
	}
}

func TestIntegrationEvents(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	var events []ProbeEvent
	onEvent := func(event ProbeEvent) {
		events = append(events, event)
	}

	urls := []string{server.URL + "/swagger.json", server.URL + "/missing.json"}
	newTestProber(1).ProbeDocuments(context.Background(), urls, onEvent)

	require.Len(t, events, 4)
	assert.Equal(t, EventDocumentFetched, events[0].Type)
	assert.Equal(t, 2, events[0].Document.OperationCount())
	assert.Equal(t, EventOperationProbed, events[1].Type)
	assert.Equal(t, EventOperationProbed, events[2].Type)
	assert.Equal(t, EventFailureRecorded, events[3].Type)
	assert.Error(t, events[3].Err)
	assert.Equal(t, 1, events[3].Index)
	assert.Equal(t, 2, events[3].Total)
}

func TestIntegrationCancelledContext(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newTestProber(1).ProbeDocuments(ctx, []string{server.URL + "/swagger.json"}, nil)
	assert.Empty(t, report.Results)
}

func TestResolvedURLsNeverContainBraces(t *testing.T) {
	server := createMockServer()
	defer server.Close()

	for seed := int64(0); seed < 10; seed++ {
		report := newTestProber(seed).ProbeDocuments(context.Background(), []string{server.URL + "/swagger.json"}, nil)
		for _, row := range report.Results {
			assert.NotContains(t, row.URL, "{")
		}
	}
}
