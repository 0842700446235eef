package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

// captureHandler collects records so tests can assert on level and attrs.
type captureHandler struct {
	records *[]slog.Record
}

func (h captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h captureHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h captureHandler) WithGroup(string) slog.Handler      { return h }

func capture(t *testing.T) *[]slog.Record {
	t.Helper()
	var records []slog.Record
	prev := slog.Default()
	slog.SetDefault(slog.New(captureHandler{records: &records}))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &records
}

func attrValue(r slog.Record, key string) (string, bool) {
	var value string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return value, found
}

func TestLogOperation(t *testing.T) {
	records := capture(t)

	LogOperation("open_crate", "u-1", 5*time.Millisecond, nil,
		slog.String("frame", "bogazici"))

	if len(*records) != 1 {
		t.Fatalf("records = %d, want 1", len(*records))
	}
	r := (*records)[0]
	if r.Level != slog.LevelInfo {
		t.Errorf("level = %v, want info for a successful operation", r.Level)
	}
	for key, want := range map[string]string{
		"type":      "economy",
		"operation": "open_crate",
		"user_id":   "u-1",
		"frame":     "bogazici",
	} {
		if got, ok := attrValue(r, key); !ok || got != want {
			t.Errorf("attr %s = %q (present %v), want %q", key, got, ok, want)
		}
	}
}

func TestLogOperation_Error(t *testing.T) {
	records := capture(t)

	LogOperation("daily_claim", "u-1", time.Millisecond, errors.New("boom"))

	if len(*records) != 1 {
		t.Fatalf("records = %d, want 1", len(*records))
	}
	r := (*records)[0]
	if r.Level != slog.LevelError {
		t.Errorf("level = %v, want error for a failed operation", r.Level)
	}
	if _, ok := attrValue(r, "error"); !ok {
		t.Error("error attr missing on failed operation")
	}
}

func TestLogQuery(t *testing.T) {
	records := capture(t)

	LogQuery("SELECT 1", time.Millisecond, nil)
	LogQuery("SELECT 2", time.Millisecond, errors.New("timeout"))

	if len(*records) != 2 {
		t.Fatalf("records = %d, want 2", len(*records))
	}
	if (*records)[0].Level != slog.LevelDebug {
		t.Errorf("successful query level = %v, want debug", (*records)[0].Level)
	}
	if (*records)[1].Level != slog.LevelError {
		t.Errorf("failed query level = %v, want error", (*records)[1].Level)
	}
	if got, _ := attrValue((*records)[0], "type"); got != "db" {
		t.Errorf("type = %q, want db", got)
	}
}

func TestLogSystemAndLogError(t *testing.T) {
	records := capture(t)

	LogSystem("schema ready", slog.String("operation", "startup"))
	LogError("config unreadable", errors.New("no such file"))

	if len(*records) != 2 {
		t.Fatalf("records = %d, want 2", len(*records))
	}
	if got, _ := attrValue((*records)[0], "type"); got != "sys" {
		t.Errorf("LogSystem type = %q, want sys", got)
	}
	if got, _ := attrValue((*records)[1], "type"); got != "error" {
		t.Errorf("LogError type = %q, want error", got)
	}
	if (*records)[1].Level != slog.LevelError {
		t.Errorf("LogError level = %v, want error", (*records)[1].Level)
	}
}
