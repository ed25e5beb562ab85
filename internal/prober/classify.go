package prober

import "github.com/moamenhredeen/oasprobe/internal/models"

// Classify splits an operation's parameters into path and query parameters,
// in declaration order. Header, formData, body and cookie parameters are dropped.
func Classify(op models.Operation) (path, query []models.ParameterSpec) {
	for _, p := range op.Parameters {
		switch p.In {
		case models.InPath:
			path = append(path, p)
		case models.InQuery:
			query = append(query, p)
		}
	}
	return path, query
}
