package prober

import (
	"context"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

// EventType represents the type of probe event
type EventType int

const (
	// EventDocumentFetched indicates a document was loaded and its operations are about to be probed
	EventDocumentFetched EventType = iota
	// EventOperationProbed indicates an operation received a response
	EventOperationProbed
	// EventFailureRecorded indicates a sentinel row was recorded for a document or an operation
	EventFailureRecorded
)

// ProbeEvent represents an event during a run
type ProbeEvent struct {
	Type      EventType
	SourceURL string
	Document  *models.SpecDocument    // nil when the fetch failed
	Operation *models.Operation       // nil for document events
	Result    *models.ExecutionResult // nil for EventDocumentFetched
	Err       error                   // fetch failure cause, if any
	Index     int                     // current document index (0-based)
	Total     int                     // total number of documents
}

// OnProbeEvent is a callback function for probe events
type OnProbeEvent func(event ProbeEvent)

// DocumentFetcher loads a document from its URL
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*models.SpecDocument, error)
}

// Prober runs every operation of every document, one at a time
type Prober struct {
	fetcher  DocumentFetcher
	builder  *RequestBuilder
	executor *Executor
}

// NewProber creates a prober from its collaborators
func NewProber(fetcher DocumentFetcher, builder *RequestBuilder, executor *Executor) *Prober {
	if builder == nil {
		builder = NewRequestBuilder(nil, "")
	}
	if executor == nil {
		executor = NewExecutor(0)
	}
	return &Prober{
		fetcher:  fetcher,
		builder:  builder,
		executor: executor,
	}
}

// ProbeOperation builds and issues the request for a single operation
func (p *Prober) ProbeOperation(ctx context.Context, doc *models.SpecDocument, op models.Operation) models.ExecutionResult {
	req := p.builder.BuildRequest(doc, op)

	result := p.executor.Issue(ctx, req.Method, req.URL)
	result.Version = req.Version
	result.PathParams = req.PathParams
	result.QueryParams = req.QueryParams
	return result
}

// ProbeDocument fetches url and probes each of its operations, appending
// the rows to report. A fetch failure appends a single FETCH row instead.
func (p *Prober) ProbeDocument(ctx context.Context, url string, report *models.Report, onEvent OnProbeEvent) {
	p.probeDocument(ctx, url, 0, 1, report, onEvent)
}

func (p *Prober) probeDocument(ctx context.Context, url string, index, total int, report *models.Report, onEvent OnProbeEvent) {
	emit := func(event ProbeEvent) {
		if onEvent != nil {
			event.SourceURL = url
			event.Index = index
			event.Total = total
			onEvent(event)
		}
	}

	doc, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		row := models.FetchFailure(url, err.Error())
		report.AddResult(row)
		emit(ProbeEvent{Type: EventFailureRecorded, Result: &row, Err: err})
		return
	}
	emit(ProbeEvent{Type: EventDocumentFetched, Document: doc})

	for _, op := range doc.Operations() {
		if ctx.Err() != nil {
			return
		}

		row := p.ProbeOperation(ctx, doc, op)
		report.AddResult(row)

		eventType := EventOperationProbed
		if row.Status.IsError() {
			eventType = EventFailureRecorded
		}
		emit(ProbeEvent{Type: eventType, Document: doc, Operation: &op, Result: &row})
	}
}

// ProbeDocuments probes every document in order and returns the report.
// Cancelling ctx stops the run before the next document or operation.
func (p *Prober) ProbeDocuments(ctx context.Context, urls []string, onEvent OnProbeEvent) *models.Report {
	report := models.NewReport()
	total := len(urls)

	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}
		p.probeDocument(ctx, url, i, total, report, onEvent)
	}

	return report
}
