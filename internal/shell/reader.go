package shell

import (
	"bufio"
	"fmt"
	"io"
)

// Prompt is shown before every command is read.
const Prompt = "Enter a command (commit, info <filename>, status, exit): "

// LineReader yields one line of user input per call. It returns io.EOF when
// input is exhausted. *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

// PromptReader reads lines from a plain stream, writing the prompt to out first.
type PromptReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func NewPromptReader(in io.Reader, out io.Writer, prompt string) *PromptReader {
	return &PromptReader{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
	}
}

func (r *PromptReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}
