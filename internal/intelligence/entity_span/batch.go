package entity_span

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/entitylens/pkg/errors"
)

// Document is one text of a batch together with the sources run over it.
type Document struct {
	ID      string
	Text    string
	Sources []Source
}

// DocumentResult is the outcome for one document.  Exactly one of Result and
// Err is set.
type DocumentResult struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
}

// BatchResult aggregates a batch run.  Results are in input order.
type BatchResult struct {
	Results   []DocumentResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Duration  time.Duration    `json:"duration"`
}

// FirstError returns the error of the earliest failed document, or nil.
func (b *BatchResult) FirstError() error {
	for _, r := range b.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// HighlightBatch highlights docs with at most concurrency documents in flight.
// A concurrency of zero or less means GOMAXPROCS.  A failing document does
// not stop the others; its error is kept in its DocumentResult.  Documents
// not yet started when ctx is done fail with the context error, which is
// then also returned.  A batch that finished every document before ctx was
// done returns a nil error.
func (h *Highlighter) HighlightBatch(ctx context.Context, docs []Document, concurrency int) (*BatchResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	out := &BatchResult{Results: make([]DocumentResult, len(docs))}
	skipped := make([]error, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	log := h.logger.With(logging.Int("documents", len(docs)), logging.Int("concurrency", concurrency))
	log.Debug("batch started")

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range docs {
		g.Go(func() error {
			doc := docs[i]
			res := DocumentResult{Index: i, ID: doc.ID}
			if err := ctx.Err(); err != nil {
				skipped[i] = err
				res.Err = errors.Wrap(err, errors.ErrCodeInternal, "batch cancelled").WithDetail("document=" + doc.ID)
			} else {
				done := prometheus.TrackInFlight(h.metrics)
				r, err := h.Highlight(doc.Text, doc.Sources...)
				done()
				if err != nil {
					res.Err = errors.Wrap(err, errors.CodeUnknown, "highlight document").WithDetail("document=" + doc.ID)
				} else {
					res.Result = r
				}
			}
			prometheus.RecordBatchDocument(h.metrics, res.Err)
			// Each goroutine owns its own slot.
			out.Results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range out.Results {
		if r.Err != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	out.Duration = time.Since(start)

	log.Debug("batch complete",
		logging.Int("succeeded", out.Succeeded),
		logging.Int("failed", out.Failed),
		logging.Duration("elapsed", out.Duration),
	)
	if out.Failed > 0 {
		log.Warn("batch had failures", logging.Int("failed", out.Failed), logging.Err(out.FirstError()))
	}
	for _, err := range skipped {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
