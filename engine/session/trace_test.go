package session

import (
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSelectSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	s := New(WithTracer(tp.Tracer("test")), WithID("traced"))

	roninRaid(t, s)

	spans := recorder.Ended()
	if len(spans) != 16 {
		t.Fatalf("expected one span per Select (16), got %d", len(spans))
	}
	var moves, overs int
	for _, span := range spans {
		if span.Name() != "session.select" {
			t.Fatalf("unexpected span %q", span.Name())
		}
		for _, ev := range span.Events() {
			switch ev.Name {
			case "move.applied":
				moves++
			case "game.over":
				overs++
			}
		}
	}
	if moves != 8 || overs != 1 {
		t.Fatalf("expected 8 move events and 1 game over, got %d and %d", moves, overs)
	}

	last := spans[len(spans)-1]
	attrs := map[string]string{}
	for _, kv := range last.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["session.id"] != "traced" || attrs["square"] != "c1" ||
		attrs["state.before"] != "piece_selected" || attrs["state.after"] != "game_over" {
		t.Fatalf("unexpected attributes on last span %v", attrs)
	}
	captured := ""
	for _, kv := range last.Events()[0].Attributes {
		if kv.Key == "captured" {
			captured = kv.Value.Emit()
		}
	}
	if captured != "Red Daimyo" {
		t.Fatalf("winning move should record the captured Daimyo, got %q", captured)
	}
}
