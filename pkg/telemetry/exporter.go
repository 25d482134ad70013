// Package telemetry exports the simulation state log to an external sink
// as JSON lines or a msgpack stream. Writes go through a circuit breaker so
// that a failing sink is skipped quickly instead of stalling the caller.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/logging"
)

// ErrSinkUnavailable is returned while the circuit breaker is open
var ErrSinkUnavailable = errors.New("telemetry sink unavailable")

// Format selects the encoding of exported entries
type Format string

// Supported formats
const (
	FormatJSONL   Format = "jsonl"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSONL, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want %s or %s)", name, FormatJSONL, FormatMsgpack)
	}
}

// BreakerSettings configures the sink circuit breaker
type BreakerSettings struct {
	MaxRequests         uint32        // requests allowed while half-open
	Interval            time.Duration // closed-state count reset period
	Timeout             time.Duration // open-state duration
	MaxConsecutiveFails uint32
}

// DefaultBreakerSettings returns settings suited to a local file or pipe
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             5 * time.Second,
		MaxConsecutiveFails: 3,
	}
}

// Exporter writes state log entries to an io.Writer
type Exporter struct {
	w        io.Writer
	format   Format
	breaker  *gobreaker.CircuitBreaker
	logger   *logging.Logger
	exported uint64
}

// NewExporter creates an exporter writing to w. A nil logger discards
// breaker state changes.
func NewExporter(w io.Writer, format Format, settings BreakerSettings, logger *logging.Logger) (*Exporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "orbital-telemetry",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "telemetry breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Exporter{
		w:       w,
		format:  format,
		breaker: breaker,
		logger:  logger,
	}, nil
}

// Flush encodes entries and writes them in a single write call. While the
// breaker is open it returns ErrSinkUnavailable without writing.
func (e *Exporter) Flush(ctx context.Context, entries []engine.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	data, err := Encode(entries, e.format)
	if err != nil {
		return err
	}

	_, err = e.breaker.Execute(func() (interface{}, error) {
		_, werr := e.w.Write(data)
		return nil, werr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
		e.logger.Error(ctx, "telemetry write failed", err,
			"entries", len(entries),
			"state", e.breaker.State().String(),
		)
		return logging.WrapError(err, "write %d log entries", len(entries))
	}

	e.exported += uint64(len(entries))
	return nil
}

// Drain exports the sim's state log and truncates it on success. On
// failure the entries stay in the log for the next attempt.
func (e *Exporter) Drain(ctx context.Context, sim *engine.Sim) error {
	if err := e.Flush(ctx, sim.Log()); err != nil {
		return err
	}
	sim.TruncateLog()
	return nil
}

// Exported returns the number of entries written so far
func (e *Exporter) Exported() uint64 {
	return e.exported
}

// State returns the circuit breaker state
func (e *Exporter) State() gobreaker.State {
	return e.breaker.State()
}

// Encode serialises entries in the given format
func Encode(entries []engine.LogEntry, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSONL:
		enc := json.NewEncoder(&buf)
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return nil, fmt.Errorf("failed to encode log entry %d: %w", entry.Tick, err)
			}
		}
	case FormatMsgpack:
		enc := msgpack.NewEncoder(&buf)
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return nil, fmt.Errorf("failed to encode log entry %d: %w", entry.Tick, err)
			}
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return buf.Bytes(), nil
}

// Decode reads every entry from r until EOF
func Decode(r io.Reader, format Format) ([]engine.LogEntry, error) {
	var entries []engine.LogEntry
	var decode func(v interface{}) error

	switch format {
	case FormatJSONL:
		decode = json.NewDecoder(r).Decode
	case FormatMsgpack:
		decode = msgpack.NewDecoder(r).Decode
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	for {
		var entry engine.LogEntry
		err := decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, fmt.Errorf("failed to decode log entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
	}
}
