package models

import (
	"encoding/json"
	"strconv"
)

// MethodFetch marks a row produced by a document that could not be loaded
const MethodFetch = "FETCH"

// NotApplicable fills columns that have no value on a FETCH row
const NotApplicable = "N/A"

// SentinelError replaces the status code when no response was received
const SentinelError = "Error"

// Status is either an HTTP status code or a failure sentinel
type Status struct {
	Code     int
	Sentinel string
}

// StatusCode builds a status from a received HTTP response code
func StatusCode(code int) Status {
	return Status{Code: code}
}

// StatusError is the sentinel status of a failed request or fetch
func StatusError() Status {
	return Status{Sentinel: SentinelError}
}

// IsError reports whether the status is a sentinel rather than a code
func (s Status) IsError() bool {
	return s.Sentinel != ""
}

func (s Status) String() string {
	if s.IsError() {
		return s.Sentinel
	}
	return strconv.Itoa(s.Code)
}

// MarshalJSON renders numeric codes as numbers and sentinels as strings
func (s Status) MarshalJSON() ([]byte, error) {
	if s.IsError() {
		return json.Marshal(s.Sentinel)
	}
	return json.Marshal(s.Code)
}

// ExecutionResult is one report row
type ExecutionResult struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	Version     string `json:"version,omitempty"`
	PathParams  Values `json:"path_parameters"`
	QueryParams Values `json:"query_parameters"`
	Status      Status `json:"status"`
	Body        string `json:"body"`
}

// IsFetchFailure reports whether the row stands for a failed document fetch
func (r ExecutionResult) IsFetchFailure() bool {
	return r.Method == MethodFetch
}

// FetchFailure builds the sentinel row for a document that failed to load
func FetchFailure(url, cause string) ExecutionResult {
	return ExecutionResult{
		Method: MethodFetch,
		URL:    url,
		Status: StatusError(),
		Body:   cause,
	}
}
