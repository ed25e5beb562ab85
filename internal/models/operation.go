package models

import "strings"

// ParameterType is the declared primitive type of a parameter
type ParameterType int

const (
	TypeUnknown ParameterType = iota
	TypeString
	TypeInteger
	TypeBoolean
	TypeNumber
	TypeArray
)

var parameterTypeNames = map[ParameterType]string{
	TypeUnknown: "unknown",
	TypeString:  "string",
	TypeInteger: "integer",
	TypeBoolean: "boolean",
	TypeNumber:  "number",
	TypeArray:   "array",
}

func (t ParameterType) String() string {
	if name, ok := parameterTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseParameterType maps a declared type string to a ParameterType.
// An undeclared type is treated as a string; anything unrecognized is unknown.
func ParseParameterType(s string) ParameterType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string":
		return TypeString
	case "integer":
		return TypeInteger
	case "boolean":
		return TypeBoolean
	case "number":
		return TypeNumber
	case "array":
		return TypeArray
	default:
		return TypeUnknown
	}
}

// Location is where a parameter is carried in the request
type Location string

const (
	InPath     Location = "path"
	InQuery    Location = "query"
	InHeader   Location = "header"
	InFormData Location = "formData"
	InBody     Location = "body"
	InCookie   Location = "cookie"
)

// ParameterSpec describes a single declared parameter
type ParameterSpec struct {
	Name string
	In   Location
	Type ParameterType
}

// Operation represents one (path, method) pair of a document
type Operation struct {
	Method      string
	Path        string // path template, may contain {name} placeholders
	OperationID string
	Parameters  []ParameterSpec
}

// PathItem groups the operations declared under one path template
type PathItem struct {
	Template   string
	Operations []Operation
}

// SpecDocument is the part of a Swagger/OpenAPI document the prober consumes
type SpecDocument struct {
	SourceURL string
	Version   string // document version, e.g. "2.0" or "3.0.3"
	Host      string
	BasePath  string
	Paths     []PathItem
}

// Operations returns every operation in document order
func (d *SpecDocument) Operations() []Operation {
	var ops []Operation
	for _, item := range d.Paths {
		ops = append(ops, item.Operations...)
	}
	return ops
}

// OperationCount returns the number of operations across all paths
func (d *SpecDocument) OperationCount() int {
	n := 0
	for _, item := range d.Paths {
		n += len(item.Operations)
	}
	return n
}
