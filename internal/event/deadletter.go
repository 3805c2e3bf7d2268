package event

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/GridClash_Go/internal/logger"
)

// DeadLetterSchemaVersion is the current version of the dead-letter log format
// Increment this when changing the DeadLetterEntry structure
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter handles writing failed events to a dead-letter file
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry represents an event whose handlers failed
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"` // Format version for future migrations
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter creates a new DeadLetterWriter
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DeadLetterDirPermissions); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write writes a failed event to the dead-letter file
func (dlw *DeadLetterWriter) Write(event Event, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	log := logger.FromContext(context.Background())
	log.Warn("event_dead_lettered",
		"event_type", event.Type,
		"error", lastError.Error())

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, _ := json.Marshal(entry)
	_, err := dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

// GuardedBus wraps a Bus so that handler failures never propagate into
// combat resolution: errors are recorded to the dead-letter file and
// swallowed. Fan-out stays synchronous and ordered; only the error path
// changes. Functional correctness of the core never depends on sinks.
type GuardedBus struct {
	inner      Bus
	deadLetter *DeadLetterWriter
	onFailure  func(eventType Type)
}

// NewGuardedBus creates a GuardedBus. A nil deadLetter only logs failures.
func NewGuardedBus(inner Bus, deadLetter *DeadLetterWriter) *GuardedBus {
	return &GuardedBus{inner: inner, deadLetter: deadLetter}
}

// OnHandlerFailure registers a hook invoked once per dead-lettered event,
// before the entry is written. Used to count handler failures without this
// package depending on the metrics registry.
func (g *GuardedBus) OnHandlerFailure(fn func(eventType Type)) {
	g.onFailure = fn
}

// Publish delegates synchronously and dead-letters any handler failure.
func (g *GuardedBus) Publish(ctx context.Context, e Event) error {
	err := g.inner.Publish(ctx, e)
	if err == nil {
		return nil
	}

	if g.onFailure != nil {
		g.onFailure(e.Type)
	}

	if g.deadLetter != nil {
		if werr := g.deadLetter.Write(e, err); werr != nil {
			logger.FromContext(ctx).Error(LogMsgDeadLetterWriteFailed,
				"event_type", e.Type, "error", werr)
		}
	} else {
		logger.FromContext(ctx).Warn("event handler failed",
			"event_type", e.Type, "error", err)
	}
	return nil
}

// Subscribe delegates to the inner bus.
func (g *GuardedBus) Subscribe(eventType Type, handler Handler) {
	g.inner.Subscribe(eventType, handler)
}
