package ledger

// WorkerColors is the fixed display palette. A new worker gets
// WorkerColors[len(workers) % len(WorkerColors)], so colors repeat once
// the crew outgrows the palette; that reuse is expected behavior.
var WorkerColors = []string{
	"#ef4444", "#f97316", "#22c55e", "#3b82f6",
	"#a855f7", "#ec4899", "#22d3ee", "#a3e635",
}

// nextColor picks the palette color for the n-th worker.
func nextColor(n int) string {
	return WorkerColors[n%len(WorkerColors)]
}
