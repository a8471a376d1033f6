package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_StampsServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Service: "commerce-api", Output: &buf})
	log.Info().Msg("booted")

	if !strings.Contains(buf.String(), `"service":"commerce-api"`) {
		t.Fatalf("expected service field in output, got %q", buf.String())
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	log := Init(Options{Level: "info", Output: &second})
	log.Info().Msg("hello")

	if second.Len() != 0 {
		t.Fatalf("second Init must be a no-op, got output %q", second.String())
	}
	if !strings.Contains(first.String(), "hello") {
		t.Fatalf("expected event on the first writer, got %q", first.String())
	}
}
