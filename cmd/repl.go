package cmd

import (
	"github.com/radicle-lang/radicle/repl"
	"github.com/spf13/cobra"
)

var (
	replPrompt  string
	replHistory string
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, conf, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return repl.RunRepl(env, conf.Prompt, conf.HistoryFile)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", defaultPrompt,
		"Prompt displayed when waiting for input")
	replCmd.Flags().StringVar(&replHistory, "history", "",
		"File used to persist input history")
}
