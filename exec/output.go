package exec

import (
	"io"
	"strings"
)

// PrefixWriter adds a prefix to each line of output. The scaffolder uses it
// in verbose mode to label subprocess output (e.g. "pnpm │ ...").
type PrefixWriter struct {
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
		buffer: make([]byte, 0),
	}
}

// Write adds the prefix to each complete line; a trailing partial line stays
// buffered until the next Write or Flush.
func (p *PrefixWriter) Write(data []byte) (n int, err error) {
	n = len(data)
	p.buffer = append(p.buffer, data...)

	for {
		idx := strings.IndexByte(string(p.buffer), '\n')
		if idx < 0 {
			break
		}
		line := string(p.buffer[:idx])
		p.buffer = p.buffer[idx+1:]
		if _, err := p.writer.Write([]byte(p.prefix + line + "\n")); err != nil {
			return 0, err
		}
	}

	return n, nil
}

// Flush writes any remaining buffered content as a final line.
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	_, err := p.writer.Write([]byte(p.prefix + string(p.buffer) + "\n"))
	p.buffer = p.buffer[:0]
	return err
}
