package analytics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTrackRecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	c := NewWithProvider(tp)
	ctx := context.Background()

	c.Track(ctx, "add_to_cart", map[string]string{"item_name": "Fan"})
	c.Track(ctx, "  ", nil)

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "analytics.add_to_cart" {
		t.Fatalf("got name %q", spans[0].Name())
	}
	found := false
	for _, kv := range spans[0].Attributes() {
		if kv.Key == attribute.Key("item_name") && kv.Value.AsString() == "Fan" {
			found = true
		}
	}
	if !found {
		t.Fatalf("item_name attribute missing: %v", spans[0].Attributes())
	}

	if err := c.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Track(context.Background(), "login", nil)
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if NewWithProvider(nil) != nil {
		t.Fatalf("expected nil collector for nil provider")
	}
}

func TestNewDisabled(t *testing.T) {
	c, err := New(context.Background(), Options{Enabled: false}, nil)
	if err != nil || c != nil {
		t.Fatalf("disabled analytics should return nil, nil; got %v, %v", c, err)
	}
}
