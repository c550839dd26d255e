package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/radicle-lang/radicle/lisp"
	"github.com/radicle-lang/radicle/parser"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	maxStackHeight int
	verbose        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radicle [file]",
	Short: "A minimal lisp interpreter",
	Long: `Radicle evaluates programs built from quote, atom, eq, first, rest,
cons, cond, lambda and label.  Without arguments it starts an interactive
session, with a file argument it interprets the file.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return replCmd.RunE(cmd, args)
		}
		runExpression = false
		return runCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&maxStackHeight, "max-stack-height", defaultMaxStackHeight,
		"Maximum function call depth (0 for no limit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log function calls to stderr")
}

// newEnv loads the configuration for cmd and returns a new environment
// configured from it.
func newEnv(cmd *cobra.Command) (*lisp.Env, *Config, error) {
	conf, err := loadCommandConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if conf.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	env, err := lisp.NewEnv(
		lisp.WithReader(parser.NewReader()),
		lisp.WithLogger(logger),
		lisp.WithMaximumStackHeight(conf.MaxStackHeight),
	)
	if err != nil {
		return nil, nil, err
	}
	return env, conf, nil
}
