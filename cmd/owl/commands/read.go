package commands

import (
	"fmt"

	"github.com/panyam/owl/parser"
	"github.com/spf13/cobra"
)

var readExpr bool

var readCmd = &cobra.Command{
	Use:   "read <file|->",
	Short: "Parses source and prints the expression trees",
	Long: `The read command parses every expression in a file and prints each tree on
its own line without evaluating anything.  Function call forms and do blocks
are shown in their list form.  With --expr the argument is the source text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, code := "<expr>", args[0]
		if !readExpr {
			var err error
			name = args[0]
			if code, err = readSource(args[0], cmd.InOrStdin()); err != nil {
				return err
			}
		}
		forms, err := parser.ParseAll(code)
		for _, form := range forms {
			printValue(cmd.OutOrStdout(), form)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	},
}

func init() {
	AddCommand(readCmd)
	readCmd.Flags().BoolVarP(&readExpr, "expr", "e", false, "Treat the argument as source text instead of a file")
}
