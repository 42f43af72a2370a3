// internal/infra/analytics/collector.go
package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

const (
	ServiceName     = "storefront-api"
	defaultEndpoint = "localhost:4317"
	eventPrefix     = "analytics."
)

// Options は analytics の初期化設定。
type Options struct {
	Enabled  bool
	Endpoint string
}

// Collector は業務イベント（sign_up / add_to_cart など）を OTLP へ送ります。
// usecase.EventTracker の実装。nil の Collector でも Track / Shutdown は安全に呼べる。
type Collector struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

// New は Enabled のときだけ Collector を作る。無効なら (nil, nil)。
func New(ctx context.Context, opts Options, log logrus.FieldLogger) (*Collector, error) {
	if !opts.Enabled {
		return nil, nil
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithDialOption(grpc.WithConnectParams(
			grpc.ConnectParams{MinConnectTimeout: 5 * time.Second},
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "analytics: create OTLP exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "analytics: create resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	if log != nil {
		log.WithField("endpoint", endpoint).Info("[analytics] collector initialized")
	}
	return NewWithProvider(tp), nil
}

// NewWithProvider は既存の TracerProvider から Collector を作る（テスト用）。
func NewWithProvider(tp *sdktrace.TracerProvider) *Collector {
	if tp == nil {
		return nil
	}
	return &Collector{tp: tp, tracer: tp.Tracer(ServiceName)}
}

// Track は 1 イベントを 1 span として記録する。失敗は返さない。
func (c *Collector) Track(ctx context.Context, name string, attrs map[string]string) {
	if c == nil || c.tracer == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	_, span := c.tracer.Start(ctx, eventPrefix+name, trace.WithAttributes(kv...))
	span.End()
}

// Shutdown は未送信のイベントを flush して終了する。
func (c *Collector) Shutdown(ctx context.Context) error {
	if c == nil || c.tp == nil {
		return nil
	}
	return c.tp.Shutdown(ctx)
}
