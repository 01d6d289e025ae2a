package vm

import (
	"bufio"
	"io"
	"strings"
)

// ConsoleReader is a LineReader over plain streams. The prompt is written to
// w before each read.
type ConsoleReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewConsoleReader returns a ConsoleReader reading from r and prompting on w.
func NewConsoleReader(r io.Reader, w io.Writer) *ConsoleReader {
	return &ConsoleReader{r: bufio.NewReader(r), w: w}
}

// ReadLine implements LineReader. A final line without a terminator is
// returned before io.EOF.
func (c *ConsoleReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && c.w != nil {
		io.WriteString(c.w, prompt)
	}
	line, err := c.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
