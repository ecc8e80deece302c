// Package eventlog records engine change events as zstd-compressed JSON lines
// and reads them back for replay or inspection.
package eventlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

// Ext is the file extension of recorded streams.
const Ext = ".jsonl.zst"

// ErrClosed indicates a write after Close.
var ErrClosed = errors.New("eventlog: recorder closed")

// Recorder is a wfc.Listener appending every event to <dir>/<prefix>.jsonl.zst.
// Notify cannot fail, so the first write error is kept and reported by Err
// and Close; later events are dropped.
type Recorder struct {
	path string

	mu     sync.Mutex
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	err    error
	events int
}

var _ wfc.Listener = (*Recorder)(nil)

// NewRecorder creates dir if needed and truncates the target file.
func NewRecorder(dir, prefix string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, prefix+Ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Recorder{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

// Path is the file being written.
func (r *Recorder) Path() string { return r.path }

// Notify appends ev as one JSON line.
func (r *Recorder) Notify(ev wfc.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if r.w == nil {
		r.err = ErrClosed
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		r.err = fmt.Errorf("eventlog: marshal seq %d: %w", ev.Seq, err)
		return
	}
	if _, err := r.w.Write(b); err != nil {
		r.err = err
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.err = err
		return
	}
	r.events++
}

// Events is the number of events written so far.
func (r *Recorder) Events() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if errors.Is(r.err, ErrClosed) {
		return nil
	}
	return r.err
}

// Close flushes and closes the stream. Returns the first write error or
// close error. Safe to call twice.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return nil
	}
	errFlush := r.w.Flush()
	errEnc := r.enc.Close()
	errFile := r.f.Close()
	r.w, r.enc, r.f = nil, nil, nil
	return errors.Join(r.err, errFlush, errEnc, errFile)
}

// ReadFile decodes every event recorded in path.
func ReadFile(path string) ([]wfc.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []wfc.Event
	for sc.Scan() {
		var ev wfc.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", filepath.Base(path), len(out)+1, err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}
