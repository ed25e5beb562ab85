package models

// Report is the append-only, ordered sequence of result rows for a run.
// It is not safe for concurrent use; appends must be serialized by the caller.
type Report struct {
	TotalRows     int               `json:"total_rows"`
	Probed        int               `json:"probed"`
	Failed        int               `json:"failed"`
	FetchFailures int               `json:"fetch_failures"`
	Results       []ExecutionResult `json:"results"`
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{Results: make([]ExecutionResult, 0)}
}

// AddResult appends a row and updates the counters
func (r *Report) AddResult(result ExecutionResult) {
	r.Results = append(r.Results, result)
	r.TotalRows++

	switch {
	case result.IsFetchFailure():
		r.FetchFailures++
	case result.Status.IsError():
		r.Probed++
		r.Failed++
	default:
		r.Probed++
	}
}

// Rows returns a copy of the rows appended so far
func (r *Report) Rows() []ExecutionResult {
	rows := make([]ExecutionResult, len(r.Results))
	copy(rows, r.Results)
	return rows
}
