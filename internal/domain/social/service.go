package social

import (
	"context"
)

// Collector produces the post sequence for a brand. The current
// implementation fabricates data; a real platform integration would
// satisfy the same interface.
type Collector interface {
	Collect(ctx context.Context, brand string) ([]Post, error)
}

// InsightGenerator turns a snapshot into a short list of narrative
// insights. Implementations summarize the snapshot they are given and
// never recompute metrics from the raw posts, so the numbers shown to
// users cannot drift from the aggregation.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, brand string, posts []Post, snapshot Snapshot) ([]string, error)
}

// Searcher runs a full brand search: collect, aggregate, annotate.
type Searcher interface {
	Search(ctx context.Context, brand string) (*SearchResult, error)
}
