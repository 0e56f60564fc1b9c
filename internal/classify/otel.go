package classify

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName scopes the classifier counters.
const InstrumentationName = "github.com/pitchlab/passmap/internal/classify"

// Option configures a Classifier.
type Option func(*Classifier)

// WithMeter records the pass counters on m instead of the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(c *Classifier) {
		if m != nil {
			c.meter = m
		}
	}
}

func globalMeter() metric.Meter {
	return otel.Meter(InstrumentationName)
}
