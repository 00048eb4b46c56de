package commands

import (
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Evaluates a single expression and prints its value",
	Long: `The eval command reads the first expression of its argument and evaluates
it in a fresh session.  Parse errors are logged and print nil, like unknown
operators and unbound symbols do.`,
	Example: `  owl eval "(+ 1 2 3)"
  owl eval -D x=41 "+(x 1)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		result, err := session.Eval(args[0])
		if err != nil {
			return err
		}
		printValue(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	AddCommand(evalCmd)
}
