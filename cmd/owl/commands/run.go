package commands

import (
	"github.com/spf13/cobra"
)

var runQuiet bool

var runCmd = &cobra.Command{
	Use:   "run <file|->",
	Short: "Runs every expression in a script file",
	Long: `The run command reads all expressions in a file (or stdin when the file is
"-") and evaluates them in order in one session.  Nothing is evaluated if the
file does not parse.  The value of the last expression is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readSource(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		session, err := newSession()
		if err != nil {
			return err
		}
		result, err := session.Run(code)
		if err != nil {
			return err
		}
		if !runQuiet {
			printValue(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

func init() {
	AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print the final value")
}
