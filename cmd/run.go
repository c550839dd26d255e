package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/radicle-lang/radicle/repl"
	"github.com/spf13/cobra"
)

var runExpression bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file ...]",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or files.  Every
top-level expression with a value has its value printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := runReadSources(args)
		if err != nil {
			return err
		}
		env, _, err := newEnv(cmd)
		if err != nil {
			return err
		}
		var failed error
		for i := range sources {
			err := repl.ReadEval(env, cmd.OutOrStdout(), sources[i].name, bytes.NewReader(sources[i].text))
			if err != nil && failed == nil {
				failed = fmt.Errorf("%s: evaluation failed", sources[i].name)
			}
		}
		return failed
	},
}

type runSource struct {
	name string
	text []byte
}

func runReadSources(args []string) ([]runSource, error) {
	sources := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSource{fmt.Sprintf("<arg%d>", i+1), []byte(args[i])}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("can't open file %s: %w", path, err)
		}
		sources[i] = runSource{path, b}
	}
	return sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
}
