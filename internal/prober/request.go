package prober

import (
	"strings"

	"github.com/moamenhredeen/oasprobe/internal/generator"
	"github.com/moamenhredeen/oasprobe/internal/models"
)

// PreparedRequest is an operation with its values synthesized and URL resolved
type PreparedRequest struct {
	Method      string
	URL         string
	Version     string
	PathParams  models.Values
	QueryParams models.Values
}

// RequestBuilder turns operations into prepared requests
type RequestBuilder struct {
	generator *generator.Generator
	scheme    string
}

// NewRequestBuilder creates a request builder drawing values from gen
func NewRequestBuilder(gen *generator.Generator, scheme string) *RequestBuilder {
	if gen == nil {
		gen = generator.NewGenerator()
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &RequestBuilder{generator: gen, scheme: scheme}
}

// BuildRequest synthesizes values for op's path and query parameters and
// resolves its URL against doc's host and basePath.
//
// A name declared both in path and in query gets two independent values:
// the path value is substituted into the URL and the query value is still sent.
func (rb *RequestBuilder) BuildRequest(doc *models.SpecDocument, op models.Operation) PreparedRequest {
	pathParams, queryParams := Classify(op)

	pathValues := models.Values{}
	for _, param := range pathParams {
		val, ok := rb.generator.Synthesize(param.Type)
		if !ok {
			// A placeholder can't be omitted from a path, so fall back to a string
			val, ok = rb.generator.Synthesize(models.TypeString)
		}
		if ok {
			pathValues[param.Name] = val
		}
	}

	// Placeholders nobody declared still need a value
	for _, name := range Placeholders(op.Path) {
		if _, ok := pathValues[name]; ok {
			continue
		}
		if val, ok := rb.generator.Synthesize(models.TypeString); ok {
			pathValues[name] = val
		}
	}

	queryValues := models.Values{}
	for _, param := range queryParams {
		if val, ok := rb.generator.Synthesize(param.Type); ok {
			queryValues[param.Name] = val
		}
	}

	resolved := ResolveURL(Target{
		Scheme:   rb.scheme,
		Host:     doc.Host,
		BasePath: doc.BasePath,
		Path:     op.Path,
	}, pathValues, queryValues)

	return PreparedRequest{
		Method:      strings.ToUpper(op.Method),
		URL:         resolved.URL,
		Version:     resolved.Version,
		PathParams:  pathValues,
		QueryParams: queryValues,
	}
}
