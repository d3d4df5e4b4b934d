package logging

import (
	"io"
	"os"
	"sync/atomic"
)

// stderrSink is the writer every logger's stderr output goes through. The
// destination can be swapped while loggers are live.
type stderrSink struct {
	dest atomic.Pointer[io.Writer]
}

func (s *stderrSink) Write(p []byte) (int, error) {
	return (*s.dest.Load()).Write(p)
}

func (s *stderrSink) swap(w io.Writer) io.Writer {
	return *s.dest.Swap(&w)
}

var sink = func() *stderrSink {
	s := &stderrSink{}
	var w io.Writer = os.Stderr
	s.dest.Store(&w)
	return s
}()

// SetGlobalOutput redirects the stderr output of all loggers to w and returns
// a func that restores the previous destination. The TUI uses it to keep log
// lines off the alternate screen.
func SetGlobalOutput(w io.Writer) (restore func()) {
	prev := sink.swap(w)
	return func() { sink.swap(prev) }
}

// GetGlobalOutput returns the shared sink loggers write to.
func GetGlobalOutput() io.Writer {
	return sink
}
