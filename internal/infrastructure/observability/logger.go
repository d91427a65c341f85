package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger configures the process-wide zerolog logger. Development gets a
// human-readable console stream; everywhere else logs are JSON lines with
// caller information so they can be shipped as-is.
func InitLogger(serviceName, env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	base := zerolog.New(os.Stdout)
	if env == "development" {
		base = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	builder := base.With().Timestamp().Str("service", serviceName)
	if env != "development" {
		builder = builder.Caller()
	}
	log.Logger = builder.Logger()
}

// LoggerFromContext returns a request-scoped logger. Inside an active trace
// the trace and span ids are attached, so a log line can be joined back to
// its trace in the collector.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Logger

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		logger = logger.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}

	return &logger
}
