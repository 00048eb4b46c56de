package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/owl/decl"
	"github.com/panyam/owl/parser"
	"github.com/panyam/owl/runtime"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".owl_history"
	promptMain  = "owl> "
	promptCont  = "...> "
)

var replHelp = `
REPL commands:
  :env     List the bindings in the root environment
  :help    Show this help
  :quit    Exit the REPL

Unfinished expressions continue on the next line.  Ctrl+C discards the
current input, Ctrl+D exits.
`

var (
	resultColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "owl %s\nType :help for help, :quit to exit.\n", Version)
		runRepl(ln, out, session)
		return nil
	},
}

func init() {
	AddCommand(replCmd)
}

// lineInput is where the REPL gets its lines from.
type lineInput interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runRepl reads, evaluates and prints until the input is exhausted or the
// user quits.
func runRepl(in lineInput, out io.Writer, session *runtime.Session) {
	for {
		code, ok := readByParseProbe(in)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		in.AppendHistory(code)

		if strings.HasPrefix(code, ":") {
			if quit := replCommand(strings.ToLower(code), out, session); quit {
				return
			}
			continue
		}

		result, err := session.Run(code)
		if err != nil {
			errorColor.Fprintln(out, err.Error())
			continue
		}
		resultColor.Fprintln(out, decl.PPrint(result))
	}
}

// replCommand runs a :command and reports whether the REPL should exit.
func replCommand(command string, out io.Writer, session *runtime.Session) bool {
	switch command {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprint(out, replHelp)
	case ":env":
		for _, name := range session.Env.Keys() {
			fmt.Fprintf(out, "%s = %s\n", name, session.Env.Get(name).String())
		}
	default:
		errorColor.Fprintf(out, "unknown command %s, try :help\n", command)
	}
	return false
}

// readByParseProbe keeps prompting while the text collected so far is an
// unfinished expression.  It returns false at end of input.
func readByParseProbe(in lineInput) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseAll(src); parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
