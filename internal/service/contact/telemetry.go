package contact

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Alijeyrad/portfolio_backend/internal/service/contact"

// Instruments bind to the global providers, which forward to the real ones
// once observability is initialized.
var (
	tracer      = otel.Tracer(instrumentationName)
	submissions metric.Int64Counter
)

func init() {
	var err error
	submissions, err = otel.Meter(instrumentationName).Int64Counter(
		"contact_submissions_total",
		metric.WithDescription("Contact form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		otel.Handle(err)
		submissions, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("contact_submissions_total")
	}
}
