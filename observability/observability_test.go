package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aalemi-dev/devicetel/observability"
)

type recordingObserver struct {
	events []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.events = append(r.events, ctx)
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()

	observer := observability.NewNoOpObserver()

	// Should not panic
	observer.ObserveOperation(observability.OperationContext{
		Component: "otlphttp",
		Operation: "export",
	})
}

func TestNotify_NilObserver(t *testing.T) {
	t.Parallel()

	// Should not panic
	observability.Notify(nil, observability.OperationContext{Component: "kafka"})

	rec := &recordingObserver{}
	observability.Notify(rec, observability.OperationContext{Component: "kafka"})
	assert.Len(t, rec.events, 1)
}

func TestMulti(t *testing.T) {
	t.Parallel()

	a, b := &recordingObserver{}, &recordingObserver{}
	obs := observability.Multi(a, nil, b)

	ctx := observability.OperationContext{
		Component: "otlphttp",
		Operation: "export",
		Resource:  "/v1/traces",
		Duration:  15 * time.Millisecond,
		Error:     errors.New("connection refused"),
		Size:      512,
	}
	obs.ObserveOperation(ctx)

	assert.Equal(t, []observability.OperationContext{ctx}, a.events)
	assert.Equal(t, []observability.OperationContext{ctx}, b.events)
}
