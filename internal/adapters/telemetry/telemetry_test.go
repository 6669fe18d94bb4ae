package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/bundler/internal/adapters/telemetry"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	shutdown := telemetry.Setup(recorder)
	defer func() { _ = shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test")
	_, span := tracer.Start(context.Background(), "assemble app", ports.WithAttribute("bundle.key", "app"))
	span.SetAttribute("bundle.bytes", 42)
	span.SetAttribute("bundle.style", true)
	span.SetAttribute("bundle.deps", []string{"a.less"})
	span.SetAttribute("bundle.ratio", 0.5)
	span.SetAttribute("bundle.other", struct{ X int }{1})
	span.RecordError(errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "assemble app", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("bundle.key", "app"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("bundle.bytes", 42))
	assert.Contains(t, ended[0].Attributes(), attribute.Bool("bundle.style", true))
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	bridge := telemetry.NewBridge(mockLogger)

	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "assemble app")
	span.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	bridge := telemetry.NewBridge(mockLogger)

	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "assemble app failed")
		assert.Contains(t, msg, "test error")
	}).Times(1)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "assemble app")
	span.SetStatus(codes.Error, "test error")
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "assemble app")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, newCtx)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
