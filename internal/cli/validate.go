package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snquery/snquery/internal/queryir"
	"github.com/snquery/snquery/internal/sysparm"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one invalid clause or load problem.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Clause  int    `json:"clause,omitempty"` // 1-based clause position, 0 when unknown
	Field   string `json:"field,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <query-file>",
		Short: "Validate a query file without emitting the encoded string",
		Long: `Validate a YAML query definition against the operator table.

Checks clause shapes, operator names, join tokens and sort directions
without printing the encoded query. Faster feedback than compile when
editing query files.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, queryPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	doc, err := LoadQueryFile(queryPath)
	if err != nil {
		code, message := buildErrorCLICode(err)
		return outputValidateError(formatter, code, message)
	}

	table, err := ResolveTable(opts)
	if err != nil {
		code, message := buildErrorCLICode(err)
		return outputValidateError(formatter, code, message)
	}

	formatter.VerboseLog("Validating %s against %d operator(s)", queryPath, table.Len())

	validationErrors := validateQueryFile(doc, table)
	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	return outputValidateSuccess(formatter)
}

// validateQueryFile collects every clause error in the document.
//
// Compilation is fail-fast, but validate checks the filter and sort
// sections independently and reports all defects found, so a bad filter
// clause does not hide a bad sort direction. Decode errors cap a section
// at one error; clause-level checks are collected in full.
func validateQueryFile(doc *QueryFile, table *queryir.Table) []ValidationError {
	if doc.IsBasic() {
		if _, err := buildBasic(doc.Basic); err != nil {
			return []ValidationError{toValidationError(err)}
		}
		return nil
	}

	var errs []ValidationError

	filter, err := queryir.DecodeFilter(doc.Filter)
	if err != nil {
		errs = append(errs, toValidationError(err))
		filter = nil
	}
	sortKeys, err := queryir.DecodeSort(doc.Sort)
	if err != nil {
		errs = append(errs, toValidationError(err))
		sortKeys = nil
	}

	for _, clauseErr := range sysparm.NewEncoder(table).Check(filter, sortKeys) {
		errs = append(errs, toValidationError(clauseErr))
	}
	return errs
}

// toValidationError converts a clause or load error to its reported form.
func toValidationError(err error) ValidationError {
	var be *queryir.BuildError
	if errors.As(err, &be) {
		ve := ValidationError{
			Code:    MapBuildErrorCode(be.Code),
			Message: be.Message,
			Field:   be.Field,
		}
		if be.Index >= 0 {
			ve.Clause = be.Index + 1
		}
		return ve
	}

	code, message := buildErrorCLICode(err)
	return ValidationError{Code: code, Message: message}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Query valid")
	return nil
}

// outputValidateError outputs a single load-level validation error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs clause validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Query invalid")
	fmt.Fprintln(formatter.Writer)

	for _, ve := range errs {
		if ve.Clause > 0 {
			fmt.Fprintf(formatter.Writer, "clause %d\n", ve.Clause)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", ve.Code, ve.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
