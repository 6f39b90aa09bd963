package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileResult holds the compiled query for JSON output.
type CompileResult struct {
	Query string `json:"query"`
	Mode  string `json:"mode"` // "basic" or "advanced"
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query-file>",
		Short: "Compile a query file to its encoded string",
		Long: `Compile a YAML query definition to the encoded query string.

The query file holds either filter/sort clause lists (advanced form) or
basic order/match settings. The encoded string is printed to stdout, or
written to a file with --output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, queryPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	doc, err := LoadQueryFile(queryPath)
	if err != nil {
		code, message := buildErrorCLICode(err)
		return outputCompileError(formatter, code, message)
	}

	table, err := ResolveTable(opts.RootOptions)
	if err != nil {
		code, message := buildErrorCLICode(err)
		return outputCompileError(formatter, code, message)
	}
	formatter.VerboseLog("Operator table: %d operator(s)", table.Len())

	mode := "advanced"
	if doc.IsBasic() {
		mode = "basic"
	}
	formatter.VerboseLog("Compiling %s query from %s", mode, queryPath)

	query, err := BuildQuery(doc, table)
	if err != nil {
		code, message := buildErrorCLICode(err)
		// Invalid clauses are validation failures, not command errors.
		_ = formatter.Error(code, message, nil)
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(query), 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote encoded query to %s", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(CompileResult{Query: query, Mode: mode})
	}
	fmt.Fprintln(formatter.Writer, query)
	return nil
}

// outputCompileError outputs a command-level compile error (exit code 2).
func outputCompileError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
