package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams over x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the terminal
// behind fd without echo. A newline is printed after the read.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(fd int, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetSecret reads a password without echo when fd is a terminal and falls
// back to a plain line read from reader otherwise, so piped input keeps
// working. A negative fd means no terminal. Input already buffered by
// reader is consumed first even on a terminal.
func GetSecret(reader *bufio.Reader, fd int, prompt string, w io.Writer) ([]byte, error) {
	if fd >= 0 && reader.Buffered() == 0 {
		return GetPassword(fd, prompt, w)
	}
	line, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// TerminalFD returns the descriptor of in when it is a terminal, or -1.
func TerminalFD(in io.Reader) int {
	f, ok := in.(*os.File)
	if !ok {
		return -1
	}
	fd := int(f.Fd())
	if !isTerminal(fd) {
		return -1
	}
	return fd
}
