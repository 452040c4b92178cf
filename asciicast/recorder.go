// Package asciicast implements the optional NDJSON session recorder
// (spec §6 "Asciicast recording"), grounded on the teacher's LogC
// line-buffered io.Reader consumption (log.go) adapted to a write-through
// observer instead of a pull-based reader.
package asciicast

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// header is line 1 of the NDJSON stream (spec §6).
type header struct {
	Version   int     `json:"version"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Timestamp float64 `json:"timestamp"`
}

const formatVersion = 2

// Recorder writes an asciicast v2 NDJSON stream to an underlying writer.
// Safe for concurrent Output/Input calls; Close is idempotent.
type Recorder struct {
	mu       sync.Mutex
	w        io.Writer
	start    time.Time
	wroteHdr bool
	closed   bool
}

// New returns a Recorder that has not yet written its header; the header
// is written lazily on the first Output/Input call and takes its width and
// height from that call's arguments. New's own width and height are not
// used.
func New(w io.Writer, width, height int, start time.Time) *Recorder {
	return &Recorder{w: w, start: start}
}

func (r *Recorder) writeHeaderLocked(width, height int) error {
	if r.wroteHdr {
		return nil
	}
	h := header{
		Version:   formatVersion,
		Width:     width,
		Height:    height,
		Timestamp: float64(r.start.Unix()),
	}
	buf, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(append(buf, '\n')); err != nil {
		return err
	}
	r.wroteHdr = true
	return nil
}

// Output records an output event (terminal bytes the presenter emitted).
func (r *Recorder) Output(now time.Time, text string, width, height int) error {
	return r.emit(now, "o", text, width, height)
}

// Input records an input event (raw bytes read from the event source).
func (r *Recorder) Input(now time.Time, text string, width, height int) error {
	return r.emit(now, "i", text, width, height)
}

func (r *Recorder) emit(now time.Time, kind, text string, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("asciicast: recorder closed")
	}
	if err := r.writeHeaderLocked(width, height); err != nil {
		return err
	}
	elapsed := now.Sub(r.start).Seconds()
	// JSON array encoding gives RFC 8259 string escaping for text "for free"
	// via encoding/json (spec §6: "JSON string escaping follows RFC 8259").
	line, err := json.Marshal([]any{elapsed, kind, text})
	if err != nil {
		return err
	}
	_, err = r.w.Write(append(line, '\n'))
	return err
}

// Close marks the recorder as finished; subsequent Output/Input calls
// return an error.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
