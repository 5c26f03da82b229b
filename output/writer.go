package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"stagehand/core"
)

// Writer serializes per-source event buffers to files under a run's output
// directory. One Writer serves the whole run; WriteSource is safe to call
// concurrently for different sources since each touches only its own file.
type Writer struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string, logger *zap.SugaredLogger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, logger: logger}, nil
}

// WriteSource renders a complete, time-ordered buffer and atomically
// replaces the source's destination file. Re-running the same configuration
// overwrites deterministically. A failure leaves any previous file intact.
func (w *Writer) WriteSource(filename string, format Format, events []*core.Event) (err error) {
	final := filepath.Join(w.dir, filename)
	tmp, err := os.CreateTemp(w.dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filename, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriterSize(tmp, 1<<20)
	for _, ev := range events {
		line, rerr := Render(format, ev)
		if rerr != nil {
			return fmt.Errorf("render event for %s: %w", filename, rerr)
		}
		if _, err = buf.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
		if err = buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	if err = buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", filename, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	if err = os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("rename %s into place: %w", filename, err)
	}

	w.logger.Debugw("Source file written",
		"file", final,
		"events", len(events))
	return nil
}
