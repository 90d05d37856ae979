package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/lovincyrus/jira-assets/internal/assets"
	"github.com/lovincyrus/jira-assets/internal/credentials"
)

// lazyStore opens the credential store on first use, so verbs that fail
// validation never touch the data directory.
type lazyStore struct {
	dir string

	once  sync.Once
	store *credentials.Store
	err   error
}

func (l *lazyStore) open() (*credentials.Store, error) {
	l.once.Do(func() {
		l.store, l.err = credentials.Open(l.dir)
	})
	return l.store, l.err
}

func (l *lazyStore) Get() (credentials.Credentials, error) {
	s, err := l.open()
	if err != nil {
		return credentials.Credentials{}, err
	}
	return s.Get()
}

func (l *lazyStore) HasRequired() (bool, error) {
	s, err := l.open()
	if err != nil {
		return false, err
	}
	return s.HasRequired()
}

func (l *lazyStore) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// hintError carries a line printed after the error message.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	return &hintError{err: err, hint: hint}
}

// parseID parses a required integer flag value.
func parseID(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, assets.Invalid(field, "%s ID is required", field)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, assets.Invalid(field, "invalid %s ID %q", field, raw)
	}
	return id, nil
}

func positive(field string, v int) error {
	if v < 1 {
		return assets.Invalid(field, "%s must be a positive integer, got %d", field, v)
	}
	return nil
}

// prompter reads answers from one buffered reader so that consecutive
// prompts do not lose input.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, r: bufio.NewReader(in), out: out}
}

// line prints question and returns the trimmed answer. EOF yields what was
// read so far.
func (p *prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	s, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret reads without echo when input is a terminal.
func (p *prompter) secret(question string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.line(question)
	}
	fmt.Fprint(p.out, question)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
