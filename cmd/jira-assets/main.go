package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/lovincyrus/jira-assets/internal/assets"
	"github.com/lovincyrus/jira-assets/internal/config"
	"github.com/lovincyrus/jira-assets/internal/logging"
)

var version = "dev"

// errReported marks a failure whose message has already been written.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			a.printError(err)
		}
		return 1
	}
	return 0
}

// app is the state shared by every verb of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settings *config.Settings
	theme    *theme
	errTheme *theme
	creds    *lazyStore
	client   *assets.Client
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "jira-assets",
		Short:         "CLI to fetch data from Jira Assets (Insight)",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			a.errTheme.println(a.errOut, a.errTheme.err, "Error: Invalid command "+strings.Join(args, " "))
			fmt.Fprintln(a.out)
			_ = cmd.Help()
			return errReported
		},
	}
	config.AddFlags(root)

	root.AddCommand(
		newConfigCmd(a),
		newSchemasCmd(a),
		newObjectsCmd(a),
		newSearchCmd(a),
		newDepsCmd(a),
	)
	return root
}

// setup resolves settings and builds the client. It does no I/O beyond
// reading settings.yaml.
func (a *app) setup(cmd *cobra.Command) error {
	// Themes exist before settings load so that setting errors render.
	a.theme = newTheme(a.out, false)
	a.errTheme = newTheme(a.errOut, false)

	s, err := config.Load(cmd)
	if err != nil {
		return err
	}
	a.settings = s

	if err := logging.SetLevel(s.LogLevel); err != nil {
		return err
	}
	if s.NoColor {
		a.theme = newTheme(a.out, true)
		a.errTheme = newTheme(a.errOut, true)
		logging.L.SetColorProfile(termenv.Ascii)
	}

	a.creds = &lazyStore{dir: s.DataDir}
	a.client = assets.New(a.creds,
		assets.WithTimeout(s.Timeout),
		assets.WithUserAgent("jira-assets-cli/"+version),
		assets.WithLogger(logging.L),
	)
	logging.Debugf("data dir %s", s.DataDir)
	return nil
}

func (a *app) close() {
	if a.creds == nil {
		return
	}
	if err := a.creds.Close(); err != nil {
		logging.Warnf("close credential store: %v", err)
	}
}

// printError writes err as "Error: <message>" on stderr.
func (a *app) printError(err error) {
	t := a.errTheme
	if t == nil {
		t = newTheme(a.errOut, false)
	}
	t.println(a.errOut, t.err, "Error: "+err.Error())

	var h *hintError
	if errors.As(err, &h) {
		t.println(a.errOut, t.warn, h.hint)
	}
}

// status writes a progress line on stderr so stdout stays clean for --json.
func (a *app) status(format string, args ...any) {
	a.errTheme.println(a.errOut, a.errTheme.muted, fmt.Sprintf(format, args...))
}
