package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// flusher drains pending notices before the user is asked for input.
type flusher interface {
	Flush()
}

// TerminalUI implements pages.UI on a line-oriented terminal.
type TerminalUI struct {
	reader  *bufio.Reader
	fd      int
	out     io.Writer
	notices flusher
}

// NewTerminalUI reads lines from reader. Secrets are read without echo from
// fd when it is not negative (see TerminalFD).
func NewTerminalUI(reader *bufio.Reader, fd int, out io.Writer, notices flusher) *TerminalUI {
	return &TerminalUI{reader: reader, fd: fd, out: out, notices: notices}
}

func (u *TerminalUI) Println(a ...any) { fmt.Fprintln(u.out, a...) }

func (u *TerminalUI) Printf(format string, a ...any) { fmt.Fprintf(u.out, format, a...) }

func (u *TerminalUI) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := u.before(ctx); err != nil {
		return "", err
	}
	return GetSimpleText(u.reader, prompt, u.out)
}

func (u *TerminalUI) ReadSecret(ctx context.Context, prompt string) ([]byte, error) {
	if err := u.before(ctx); err != nil {
		return nil, err
	}
	return GetSecret(u.reader, u.fd, prompt, u.out)
}

func (u *TerminalUI) before(ctx context.Context) error {
	if u.notices != nil {
		u.notices.Flush()
	}
	return ctx.Err()
}
