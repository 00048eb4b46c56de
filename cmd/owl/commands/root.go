package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/panyam/owl/parser"
	"github.com/panyam/owl/runtime"
	"github.com/spf13/cobra"
)

// Global flags shared by every command
var (
	configPath   string
	logLevel     string
	rawSeed      bool
	panicOnFatal bool
	prettyLogs   bool
	defines      []string
)

var rootCmd = &cobra.Command{
	Use:   "owl",
	Short: "Owl is a small Lisp-family expression interpreter",
	Long: `Owl reads s-expressions, function call forms and { do blocks } and
evaluates them against a scoped environment.  Use eval for one-liners, run
for script files and repl for an interactive session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a session config file (default: OWL_CONFIG env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error or off (default: OWL_LOG_LEVEL env var or info)")
	rootCmd.PersistentFlags().BoolVar(&rawSeed, "raw-seed", false, "Use the unevaluated first argument of -, / and =")
	rootCmd.PersistentFlags().BoolVar(&panicOnFatal, "panic-on-fatal", false, "Abort on malformed special forms instead of reporting an error")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", false, "Colored log output (default when OWL_ENV=dev)")
	rootCmd.PersistentFlags().StringArrayVarP(&defines, "define", "D", nil, "Bind name=literal in the root environment (repeatable)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// setupLogging installs the global logger, writing to the command's stderr.
func setupLogging(cmd *cobra.Command) error {
	level := runtime.GetLogLevel()
	name := logLevel
	if name == "" {
		// .env files are loaded after the runtime package initialized
		name = os.Getenv("OWL_LOG_LEVEL")
	}
	if name != "" {
		parsed, err := runtime.ParseLogLevel(name)
		if err != nil {
			return err
		}
		level = parsed
	}

	out := cmd.ErrOrStderr()
	if prettyLogs || os.Getenv("OWL_ENV") == "dev" {
		handler := NewPrettyHandler(out, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
		})
		runtime.SetLogger(runtime.NewSlogLogger(slog.New(handler), level))
	} else {
		runtime.SetLogger(runtime.NewLogger(out, level))
	}
	return nil
}

// newSession builds an interpreter session from the config file and the
// global flags.  Flags win over the config file, and so does OWL_LOG_LEVEL.
func newSession() (*runtime.Session, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("OWL_CONFIG")
	}

	cfg := &runtime.SessionConfig{}
	if path != "" {
		var err error
		if cfg, err = runtime.LoadSessionConfig(path); err != nil {
			return nil, err
		}
	}

	if logLevel == "" && os.Getenv("OWL_LOG_LEVEL") == "" {
		level, ok, err := cfg.Level()
		if err != nil {
			return nil, err
		}
		if ok {
			runtime.SetLogLevel(level)
		}
	}

	var extra []runtime.Option
	if rawSeed {
		extra = append(extra, runtime.WithSeedPolicy(runtime.SeedRaw))
	}
	if panicOnFatal {
		extra = append(extra, runtime.WithFatalPolicy(runtime.FatalPanic))
	}
	session, err := runtime.NewSessionFromConfig(cfg, extra...)
	if err != nil {
		return nil, err
	}

	for _, def := range defines {
		name, literal, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid definition %q, expected name=literal", def)
		}
		value, err := parser.Parse(literal)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", name, err)
		}
		session.Define(name, value)
	}
	return session, nil
}
