package harness

import "github.com/lojacapivara/catalog/internal/product"

// TraceEvent records one executed operation and its outcome.
type TraceEvent struct {
	Seq   int64    `json:"seq"`
	Op    string   `json:"op"`
	ID    int64    `json:"id,omitempty"`    // target id, or the id assigned by insert
	Name  string   `json:"name,omitempty"`  // product name written or read
	Term  string   `json:"term,omitempty"`  // search term
	Names []string `json:"names,omitempty"` // names returned by list and searches
	Error string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the setup and flow operations in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the product table after the flow, in id order.
	Final []product.Product `json:"final"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends e to the trace with the next sequence number.
func (r *Result) addEvent(e TraceEvent) TraceEvent {
	e.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, e)
	return e
}
