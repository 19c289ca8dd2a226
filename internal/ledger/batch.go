package ledger

import "fmt"

// BatchItem is the outcome of one element of a batch operation.
type BatchItem struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// BatchResult reports a best-effort batch: every element is processed
// and the aggregate counts are returned, a single failure never aborts
// the rest. Partial success is expected for automation-driven input
// and must be reported, not swallowed.
type BatchResult struct {
	Succeeded int         `json:"succeeded"`
	Total     int         `json:"total"`
	Items     []BatchItem `json:"items"`
}

// OK reports whether every element succeeded.
func (r BatchResult) OK() bool { return r.Succeeded == r.Total }

// Message is the human-readable summary, e.g. "added 2/3".
func (r BatchResult) Message(noun string) string {
	return fmt.Sprintf("added %d/%d %s", r.Succeeded, r.Total, noun)
}

// WorkerInput describes a worker to create in a batch.
type WorkerInput struct {
	Name       string  `json:"name" yaml:"name"`
	Code       string  `json:"code" yaml:"code"`
	HourlyRate float64 `json:"hourlyRate" yaml:"hourlyRate"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// AddMultipleWorkers creates workers one by one, collecting per-item
// outcomes.
func (l *Ledger) AddMultipleWorkers(inputs []WorkerInput) BatchResult {
	result := BatchResult{Total: len(inputs)}
	for _, in := range inputs {
		w, err := l.AddWorker(in.Name, in.Code, in.HourlyRate, in.Color)
		if err != nil {
			result.Items = append(result.Items, BatchItem{Error: err.Error()})
			continue
		}
		result.Succeeded++
		result.Items = append(result.Items, BatchItem{ID: w.ID})
	}
	return result
}

// AddMultipleTasks records task entries one by one, collecting
// per-item outcomes.
func (l *Ledger) AddMultipleTasks(inputs []TaskInput) BatchResult {
	result := BatchResult{Total: len(inputs)}
	for _, in := range inputs {
		e, err := l.AddTask(in)
		if err != nil {
			result.Items = append(result.Items, BatchItem{Error: err.Error()})
			continue
		}
		result.Succeeded++
		result.Items = append(result.Items, BatchItem{ID: e.ID})
	}
	return result
}
