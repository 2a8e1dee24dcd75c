package eventstore

import "github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"

type History struct {
	CartID  int64
	Events  []event.Envelope
	Skipped []SkippedRecord
}

type SkippedRecord struct {
	RecordID  int64
	Version   int
	EventType string
	Err       error
}

// Lossy reports whether records were dropped while loading.
func (h History) Lossy() bool {
	return len(h.Skipped) > 0
}

// Version is the highest version seen, including skipped records.
func (h History) Version() int {
	v := 0
	for _, e := range h.Events {
		if e.Version > v {
			v = e.Version
		}
	}
	for _, s := range h.Skipped {
		if s.Version > v {
			v = s.Version
		}
	}
	return v
}
