package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/envy/internal/adapters/telemetry"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// newBridgedProvider returns a provider whose spans are forwarded to the bridge.
func newBridgedProvider(t *testing.T, bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp
}

func TestBridge_StepLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	var startID string
	gomock.InOrder(
		renderer.EXPECT().OnStepStart(gomock.Any(), string(domain.StepCompile), gomock.Any()).
			Do(func(spanID, _ string, _ time.Time) { startID = spanID }),
		renderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), nil).
			Do(func(spanID string, _ time.Time, _ error) {
				assert.Equal(t, startID, spanID, "completion must pair with its start")
			}),
	)

	tp := newBridgedProvider(t, telemetry.NewBridge(renderer))
	_, span := tp.Tracer("test").Start(context.Background(), string(domain.StepCompile))
	span.End()

	assert.NotEmpty(t, startID)
}

func TestBridge_FailedStepCarriesDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "cause forwarded", description: "uv exited with status 2", want: "uv exited with status 2"},
		{name: "empty description", description: "", want: "step failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			renderer := mocks.NewMockRenderer(ctrl)

			var got error
			renderer.EXPECT().OnStepStart(gomock.Any(), string(domain.StepSync), gomock.Any())
			renderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), gomock.Any()).
				Do(func(_ string, _ time.Time, err error) { got = err })

			tp := newBridgedProvider(t, telemetry.NewBridge(renderer))
			_, span := tp.Tracer("test").Start(context.Background(), string(domain.StepSync))
			span.SetStatus(codes.Error, tt.description)
			span.End()

			require.Error(t, got)
			assert.Equal(t, tt.want, got.Error())
		})
	}
}

func TestBridge_RecordedErrorReachesRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	var got error
	renderer.EXPECT().OnStepStart(gomock.Any(), string(domain.StepProvision), gomock.Any())
	renderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, err error) { got = err })

	tp := newBridgedProvider(t, telemetry.NewBridge(renderer))
	tracer := telemetry.NewOTelTracerFromProvider(tp, telemetry.InstrumentationName)

	_, span := tracer.Start(context.Background(), string(domain.StepProvision))
	span.RecordError(errors.New("uv venv failed"))
	span.End()

	require.Error(t, got)
	assert.Equal(t, "uv venv failed", got.Error())
}

func TestBridge_NilRendererIgnoresSpans(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := newBridgedProvider(t, bridge)
	_, span := tp.Tracer("test").Start(context.Background(), string(domain.StepHandoff))
	span.End()
}

func TestBridge_InvalidSpanContextIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: a stub span has no valid context and must not render.
	bridge := telemetry.NewBridge(mocks.NewMockRenderer(ctrl))

	stub := tracetest.SpanStub{Name: string(domain.StepCompile)}
	bridge.OnEnd(stub.Snapshot())
}

func TestBridge_ForceFlushAndShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	bridge := telemetry.NewBridge(mocks.NewMockRenderer(ctrl))

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
