package prober

import (
	"strings"
	"testing"

	"github.com/moamenhredeen/oasprobe/internal/models"
	"github.com/stretchr/testify/assert"
)

func intValue(n int) models.Value       { return models.Value{Type: models.TypeInteger, Raw: n} }
func stringValue(s string) models.Value { return models.Value{Type: models.TypeString, Raw: s} }

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name        string
		target      Target
		path        models.Values
		query       models.Values
		wantURL     string
		wantVersion string
	}{
		{
			name:    "base path and path parameter",
			target:  Target{Host: "api.example.com", BasePath: "/api", Path: "/users/{id}"},
			path:    models.Values{"id": intValue(5)},
			query:   models.Values{"filter": stringValue("abcdefghij")},
			wantURL: "https://api.example.com/api/users/5?filter=abcdefghij",
		},
		{
			name:        "version in base path is not duplicated",
			target:      Target{Host: "api.example.com", BasePath: "/v2/items", Path: "/list"},
			wantURL:     "https://api.example.com/v2/items/list",
			wantVersion: "v2",
		},
		{
			name:        "version moves in front of the base path",
			target:      Target{Host: "api.example.com", BasePath: "/api/v3", Path: "/pets/{petId}"},
			path:        models.Values{"petId": intValue(9)},
			wantURL:     "https://api.example.com/v3/api/pets/9",
			wantVersion: "v3",
		},
		{
			name:        "version found in path template",
			target:      Target{Host: "api.example.com", Path: "/v1/users/{id}"},
			path:        models.Values{"id": intValue(12)},
			wantURL:     "https://api.example.com/v1/users/12",
			wantVersion: "v1",
		},
		{
			name:        "only the base path token moves when both carry one",
			target:      Target{Host: "api.example.com", BasePath: "/v1", Path: "/v1/users"},
			wantURL:     "https://api.example.com/v1/v1/users",
			wantVersion: "v1",
		},
		{
			name:    "segment starting with v but not a version",
			target:  Target{Host: "api.example.com", BasePath: "/vendors", Path: "/v1beta"},
			wantURL: "https://api.example.com/vendors/v1beta",
		},
		{
			name:    "empty and root base paths",
			target:  Target{Host: "api.example.com", BasePath: "/", Path: "/health"},
			wantURL: "https://api.example.com/health",
		},
		{
			name:    "explicit scheme",
			target:  Target{Scheme: "http", Host: "127.0.0.1:8080", Path: "health"},
			wantURL: "http://127.0.0.1:8080/health",
		},
		{
			name:   "query keys sorted and values encoded",
			target: Target{Host: "api.example.com", Path: "/search"},
			query: models.Values{
				"q":    stringValue("a b"),
				"flag": {Type: models.TypeBoolean, Raw: false},
				"ids":  {Type: models.TypeArray, Raw: []int{1, 2, 3}},
			},
			wantURL: "https://api.example.com/search?flag=false&ids=1%2C2%2C3&q=a+b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveURL(tt.target, tt.path, tt.query)
			assert.Equal(t, tt.wantURL, got.URL)
			assert.Equal(t, tt.wantVersion, got.Version)
		})
	}
}

func TestResolveURLVersionAppearsOnce(t *testing.T) {
	got := ResolveURL(Target{Host: "api.example.com", BasePath: "/v2/items", Path: "/"}, nil, nil)
	assert.Equal(t, 1, strings.Count(got.URL, "v2"))
}

func TestResolveURLNeverContainsBrace(t *testing.T) {
	got := ResolveURL(Target{Host: "api.example.com", Path: "/a/{missing}/b{"}, nil, nil)
	assert.NotContains(t, got.URL, "{")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"org", "repo"}, Placeholders("/orgs/{org}/repos/{repo}"))
	assert.Empty(t, Placeholders("/health"))
}

func TestClassify(t *testing.T) {
	op := models.Operation{
		Method: "GET",
		Path:   "/users/{id}",
		Parameters: []models.ParameterSpec{
			{Name: "X-Request-ID", In: models.InHeader, Type: models.TypeString},
			{Name: "id", In: models.InPath, Type: models.TypeInteger},
			{Name: "b", In: models.InQuery, Type: models.TypeString},
			{Name: "payload", In: models.InBody},
			{Name: "a", In: models.InQuery, Type: models.TypeInteger},
			{Name: "file", In: models.InFormData},
		},
	}

	path, query := Classify(op)
	assert.Equal(t, []models.ParameterSpec{{Name: "id", In: models.InPath, Type: models.TypeInteger}}, path)
	if assert.Len(t, query, 2) {
		assert.Equal(t, "b", query[0].Name)
		assert.Equal(t, "a", query[1].Name)
	}
}

func TestClassifyBodyOnly(t *testing.T) {
	path, query := Classify(models.Operation{
		Method:     "POST",
		Path:       "/pets",
		Parameters: []models.ParameterSpec{{Name: "pet", In: models.InBody}},
	})
	assert.Empty(t, path)
	assert.Empty(t, query)
}
