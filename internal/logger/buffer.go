package logger

import (
	"encoding/json"
	"sync"
	"time"
)

// LogEntry is one decoded log line held in the ring.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	Raw       string    `json:"-"`
}

// LogBuffer is a thread-safe ring buffer of recent log entries. It implements
// io.Writer so it can back a zapcore sink; the logs screen reads from it
// instead of the terminal.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	wrapped bool
	total   uint64
}

// NewLogBuffer creates a ring holding up to maxSize entries.
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &LogBuffer{
		entries: make([]LogEntry, maxSize),
	}
}

// Write implements io.Writer for zapcore.AddSync. Each call is one encoded
// log line; lines that fail to decode are kept raw rather than dropped.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	var entry LogEntry
	if err := json.Unmarshal(p, &entry); err != nil {
		entry = LogEntry{Timestamp: time.Now(), Level: "unknown"}
	}
	entry.Raw = string(p)

	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries[lb.next] = entry
	lb.next = (lb.next + 1) % len(lb.entries)
	// The cursor returning to 0 means every slot has been written at least
	// once, including the degenerate single-slot ring.
	if lb.next == 0 {
		lb.wrapped = true
	}
	lb.total++

	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (lb *LogBuffer) Sync() error { return nil }

// Recent returns up to limit entries, oldest first.
func (lb *LogBuffer) Recent(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	var ordered []LogEntry
	if lb.wrapped {
		ordered = append(ordered, lb.entries[lb.next:]...)
		ordered = append(ordered, lb.entries[:lb.next]...)
	} else {
		ordered = append(ordered, lb.entries[:lb.next]...)
	}

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}

// Total returns how many entries were ever written.
func (lb *LogBuffer) Total() uint64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.total
}
