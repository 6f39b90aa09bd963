package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/snquery/snquery/internal/queryir"
)

// OperatorInfo is one operator table entry for JSON output.
type OperatorInfo struct {
	Name          string `json:"name"`
	QueryOperator string `json:"query_operator"`
	RequiresValue bool   `json:"requires_value"`
}

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the active operator table",
		Long: `List the operator table queries are compiled against.

Shows the default set, or the table loaded from --operators when given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperators(rootOpts, cmd)
		},
	}

	return cmd
}

func runOperators(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	table, err := ResolveTable(opts)
	if err != nil {
		code, message := buildErrorCLICode(err)
		_ = formatter.Error(code, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}

	ops := table.Operators()

	if formatter.Format == "json" {
		infos := make([]OperatorInfo, len(ops))
		for i, op := range ops {
			infos[i] = operatorInfo(op)
		}
		return formatter.Success(infos)
	}

	// Text format: aligned columns
	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTOKEN\tREQUIRES VALUE")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%t\n", op.Name, op.QueryOperator, op.RequiresValue)
	}
	return w.Flush()
}

func operatorInfo(op queryir.Operator) OperatorInfo {
	return OperatorInfo{
		Name:          op.Name,
		QueryOperator: op.QueryOperator,
		RequiresValue: op.RequiresValue,
	}
}
