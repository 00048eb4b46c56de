package commands

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/owl/runtime"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Lists the special forms and intrinsics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		indent := func(name string) string { return "  " + name }
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Special forms:")
		fmt.Fprintln(out, strings.Join(gfn.Map(runtime.SpecialForms, indent), "\n"))
		fmt.Fprintln(out, "Intrinsics:")
		fmt.Fprintln(out, strings.Join(gfn.Map(session.Evaluator.IntrinsicNames(), indent), "\n"))
		return nil
	},
}

func init() {
	AddCommand(builtinsCmd)
}
