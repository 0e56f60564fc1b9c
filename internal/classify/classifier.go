package classify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitchlab/passmap/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Classifier runs ClassifyPasses with logging and metrics attached.
type Classifier struct {
	logger *slog.Logger
	meter  metric.Meter

	// OTEL metrics
	classified metric.Int64Counter
	rejected   metric.Int64Counter
}

// New creates a Classifier.
// Without WithMeter the counters go to the global OTel meter provider.
func New(logger *slog.Logger, opts ...Option) (*Classifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Classifier{logger: logger, meter: globalMeter()}
	for _, opt := range opts {
		opt(c)
	}

	m := c.meter

	var err error

	c.classified, err = m.Int64Counter(
		"passmap.passes.classified",
		metric.WithDescription("Rows labeled, by pass category"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating classified counter: %w", err)
	}

	c.rejected, err = m.Int64Counter(
		"passmap.tables.rejected",
		metric.WithDescription("Tables rejected for missing columns"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	return c, nil
}

// Classify labels every row of table. See ClassifyPasses.
func (c *Classifier) Classify(ctx context.Context, table core.EventTable) (core.EventTable, error) {
	out, err := ClassifyPasses(table)
	if err != nil {
		c.rejected.Add(ctx, 1)
		c.logger.ErrorContext(ctx, "Cannot classify event table", "error", err, "columns", table.Columns)
		return core.EventTable{}, err
	}

	counts := CountByCategory(out)
	for _, cat := range core.PassCategories {
		if counts[cat] == 0 {
			continue
		}
		c.classified.Add(ctx, int64(counts[cat]),
			metric.WithAttributes(attribute.String("category", cat.String())))
	}

	c.logger.DebugContext(ctx, "Classified event table",
		"rows", out.Len(),
		"progressive", counts[core.PassProgressive],
		"normal", counts[core.PassNormal],
		"backwards", counts[core.PassBackwards],
		"unknown", counts[core.PassUnknown],
		"non_pass", counts[core.PassNonPass])

	return out, nil
}
