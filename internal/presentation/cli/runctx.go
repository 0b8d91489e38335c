package clipresentation

import (
	"context"
	"sort"

	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// WithRunContext injects a run-scoped logger for one CLI invocation.
// run_id is generated when attrs does not carry one; trace_id/span_id are added when ctx holds a valid span.
// Keep attrs low-cardinality: scenario, payment, shipping.
func WithRunContext(
	ctx context.Context,
	base observability.Logger,
	tel observability.Observability,
	attrs map[string]string,
) (context.Context, string) {
	if base == nil {
		if tel == nil {
			tel = observability.Nop()
		}
		base = tel.Logger()
	}

	runID := attrs["run_id"]
	if runID == "" {
		runID = uuid.NewString()
	}
	fields := make([]observability.Field, 0, len(attrs)+3)
	fields = append(fields, observability.F("run_id", runID))

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "run_id" || attrs[k] == "" {
			continue
		}
		fields = append(fields, observability.F(k, attrs[k]))
	}

	return logctx.With(ctx, base.With(fields...)), runID
}
