package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Console implements line-based prompts and messages for non-interactive
// terminals and piped input. One Console shares a single buffered reader so
// consecutive prompts never lose buffered input.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	mu     sync.Mutex

	// pending holds the read left in flight by a cancelled prompt. The next
	// prompt takes its line instead of starting a second read.
	readMu  sync.Mutex
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewConsole creates a Console on stdin, stdout and stderr.
func NewConsole() *Console {
	return NewConsoleIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewConsoleIO creates a Console on the given streams.
func NewConsoleIO(in io.Reader, out, errOut io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, errOut: errOut}
}

// Confirm asks question and returns true only for "y" or "yes".
// An empty answer or end of input counts as dismissal.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [Yes/No]: ", question)

	answer, err := c.readLine(ctx)
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(c.out)
		return false, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptDatabaseName reads a name, re-prompting while validate reports a
// problem. An empty line or end of input dismisses the prompt.
func (c *Console) PromptDatabaseName(ctx context.Context, prompt string, validate func(string) string) (string, error) {
	for {
		fmt.Fprintf(c.out, "%s: ", prompt)

		value, err := c.readLine(ctx)
		if errors.Is(err, io.EOF) && value == "" {
			fmt.Fprintln(c.out)
			return "", nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if value == "" {
			return "", nil
		}

		if validate != nil {
			if msg := validate(value); msg != "" {
				fmt.Fprintf(c.errOut, "✗ %s\n", msg)
				if errors.Is(err, io.EOF) {
					return "", nil
				}
				continue
			}
		}
		return value, nil
	}
}

// ShowInfo prints message on the output stream.
func (c *Console) ShowInfo(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, message)
}

// ShowError prints message on the error stream.
func (c *Console) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.errOut, message)
}

// readLine reads one line without its line ending, honouring ctx
// cancellation. A final line without a trailing newline is returned together
// with io.EOF. Other whitespace is kept so both prompt modes see the same text.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if c.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- readResult{strings.TrimRight(line, "\r\n"), err}
		}()
		c.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-c.pending:
		c.pending = nil
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return r.line, r.err
	}
}

var (
	_ mkdb.Confirmer    = (*Console)(nil)
	_ mkdb.NamePrompter = (*Console)(nil)
	_ mkdb.Notifier     = (*Console)(nil)
)
