package orchestration

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/koscakluka/ema-voiceturn/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)

	turnCounter, _ = meter.Int64Counter("ema.voice_turns",
		metric.WithDescription("Voice turns that returned to idle, by outcome."))
	failureCounter, _ = meter.Int64Counter("ema.voice_turn.failures",
		metric.WithDescription("Voice turn failures, by stage."))
)
