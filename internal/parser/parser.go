package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/moamenhredeen/oasprobe/internal/models"
	"github.com/pb33f/libopenapi"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// Parse builds a SpecDocument from raw Swagger 2.0 or OpenAPI 3.x bytes.
// sourceURL supplies the host when the document does not declare one.
func Parse(data []byte, sourceURL string) (*models.SpecDocument, error) {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	version := document.GetVersion()
	if strings.HasPrefix(version, "2") {
		return parseV2(document, version, sourceURL)
	}
	return parseV3(document, version, sourceURL)
}

func parseV2(document libopenapi.Document, version, sourceURL string) (*models.SpecDocument, error) {
	model, errs := document.BuildV2Model()
	if model == nil {
		return nil, fmt.Errorf("failed to build v2 model: %v", errs)
	}

	swagger := model.Model
	doc := &models.SpecDocument{
		SourceURL: sourceURL,
		Version:   version,
		Host:      swagger.Host,
		BasePath:  swagger.BasePath,
	}
	if doc.Host == "" {
		doc.Host = hostOf(sourceURL)
	}

	if swagger.Paths == nil || swagger.Paths.PathItems == nil {
		return doc, nil
	}

	for pair := swagger.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		template := pair.Key()
		pathItem := pair.Value()
		if pathItem == nil {
			continue
		}

		shared := convertV2Parameters(pathItem.Parameters)
		item := models.PathItem{Template: template}

		// Path-level "parameters" is not an operation; it only contributes shared parameters.
		// GetOperations keeps the declaration order of the methods.
		for op := pathItem.GetOperations().First(); op != nil; op = op.Next() {
			if op.Value() == nil {
				continue
			}
			item.Operations = append(item.Operations, models.Operation{
				Method:      strings.ToUpper(op.Key()),
				Path:        template,
				OperationID: op.Value().OperationId,
				Parameters:  mergeParameters(shared, convertV2Parameters(op.Value().Parameters)),
			})
		}

		doc.Paths = append(doc.Paths, item)
	}

	return doc, nil
}

func convertV2Parameters(params []*v2.Parameter) []models.ParameterSpec {
	specs := make([]models.ParameterSpec, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		specs = append(specs, models.ParameterSpec{
			Name: p.Name,
			In:   models.Location(p.In),
			Type: models.ParseParameterType(p.Type),
		})
	}
	return specs
}

func parseV3(document libopenapi.Document, version, sourceURL string) (*models.SpecDocument, error) {
	model, errs := document.BuildV3Model()
	if model == nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	doc := &models.SpecDocument{
		SourceURL: sourceURL,
		Version:   version,
	}

	// The first server stands in for Swagger 2.0's host and basePath
	for _, server := range model.Model.Servers {
		if server == nil || server.URL == "" {
			continue
		}
		if u, err := url.Parse(expandServerURL(server)); err == nil {
			doc.Host = u.Host
			doc.BasePath = strings.TrimRight(u.Path, "/")
		}
		break
	}
	if doc.Host == "" {
		doc.Host = hostOf(sourceURL)
	}

	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return doc, nil
	}

	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		template := pair.Key()
		pathItem := pair.Value()
		if pathItem == nil {
			continue
		}

		shared := convertV3Parameters(pathItem.Parameters)
		item := models.PathItem{Template: template}

		for op := pathItem.GetOperations().First(); op != nil; op = op.Next() {
			if op.Value() == nil {
				continue
			}
			item.Operations = append(item.Operations, models.Operation{
				Method:      strings.ToUpper(op.Key()),
				Path:        template,
				OperationID: op.Value().OperationId,
				Parameters:  mergeParameters(shared, convertV3Parameters(op.Value().Parameters)),
			})
		}

		doc.Paths = append(doc.Paths, item)
	}

	return doc, nil
}

// expandServerURL substitutes every {variable} of a server URL with its default
func expandServerURL(server *v3.Server) string {
	raw := server.URL
	if server.Variables == nil {
		return raw
	}
	for pair := server.Variables.First(); pair != nil; pair = pair.Next() {
		if pair.Value() == nil {
			continue
		}
		raw = strings.ReplaceAll(raw, "{"+pair.Key()+"}", pair.Value().Default)
	}
	return raw
}

func convertV3Parameters(params []*v3.Parameter) []models.ParameterSpec {
	specs := make([]models.ParameterSpec, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		declared := ""
		if p.Schema != nil {
			if schema := p.Schema.Schema(); schema != nil && len(schema.Type) > 0 {
				declared = schema.Type[0]
			}
		}
		specs = append(specs, models.ParameterSpec{
			Name: p.Name,
			In:   models.Location(p.In),
			Type: models.ParseParameterType(declared),
		})
	}
	return specs
}

// mergeParameters overlays operation-level parameters on the path-level ones.
// A parameter is identified by its name and location; declaration order is kept.
func mergeParameters(shared, own []models.ParameterSpec) []models.ParameterSpec {
	if len(shared) == 0 {
		return own
	}

	type key struct {
		name string
		in   models.Location
	}
	overridden := make(map[key]bool, len(own))
	for _, p := range own {
		overridden[key{p.Name, p.In}] = true
	}

	merged := make([]models.ParameterSpec, 0, len(shared)+len(own))
	for _, p := range shared {
		if !overridden[key{p.Name, p.In}] {
			merged = append(merged, p)
		}
	}
	return append(merged, own...)
}

// hostOf returns the network location of rawURL, or "" if it cannot be parsed
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
