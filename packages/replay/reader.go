package replay

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/testglow/testglow/packages/render"
)

// Reader streams an event log through a Recorder.
type Reader struct {
	recorder *render.Recorder
	speed    float64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithSpeed enables pacing: playback sleeps the recorded inter-event
// gaps divided by the factor. Zero (the default) replays as fast as the
// sink accepts.
func WithSpeed(factor float64) ReaderOption {
	return func(r *Reader) {
		r.speed = factor
	}
}

// NewReader builds a reader that renders through recorder.
func NewReader(recorder *render.Recorder, opts ...ReaderOption) *Reader {
	r := &Reader{recorder: recorder}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Play renders every line of src in order. Undecodable lines surface as
// advisory warnings and playback continues; only read failures and
// cancellation stop it.
func (r *Reader) Play(ctx context.Context, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var prev time.Time
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		e, ec, err := DecodeEvent(line)
		if err != nil {
			r.recorder.Warn(fmt.Sprintf("skipping line %d: %v", lineNo, err))
			continue
		}

		if r.speed > 0 && !prev.IsZero() {
			if gap := e.Instant.Sub(prev); gap > 0 {
				if err := sleep(ctx, time.Duration(float64(gap)/r.speed)); err != nil {
					return err
				}
			}
		}
		prev = e.Instant

		r.recorder.Record(e, ec)
	}
	return scanner.Err()
}

// Follow renders the log at path and keeps rendering as it grows, until
// the context is cancelled. Pacing does not apply; appended events
// render as they land.
func (r *Reader) Follow(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and loggers replace or append to the
	// file in ways a file-level watch can miss.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	tail := &tailer{reader: r, src: f}
	if err := tail.drain(); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}
			if event.Has(fsnotify.Write) {
				if err := tail.drain(); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.recorder.Warn(fmt.Sprintf("watcher error: %v", err))
		}
	}
}

// tailer reads complete lines from a growing file, holding partially
// written trailing data until its newline arrives.
type tailer struct {
	reader  *Reader
	src     io.Reader
	pending []byte
	lineNo  int
}

func (t *tailer) drain() error {
	buf := make([]byte, 64*1024)
	for {
		n, err := t.src.Read(buf)
		if n > 0 {
			t.pending = append(t.pending, buf[:n]...)
			t.flushLines()
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *tailer) flushLines() {
	for {
		idx := bytes.IndexByte(t.pending, '\n')
		if idx < 0 {
			return
		}
		line := strings.TrimSpace(string(t.pending[:idx]))
		t.pending = t.pending[idx+1:]
		t.lineNo++
		if line == "" {
			continue
		}
		e, ec, err := DecodeEvent(line)
		if err != nil {
			t.reader.recorder.Warn(fmt.Sprintf("skipping line %d: %v", t.lineNo, err))
			continue
		}
		t.reader.recorder.Record(e, ec)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
