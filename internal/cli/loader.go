package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snquery/snquery/internal/optable"
	"github.com/snquery/snquery/internal/queryir"
	"github.com/snquery/snquery/internal/sysparm"
)

// QueryFile is one query definition document.
//
// Advanced form: `filter` and `sort` hold clause lists (or a single
// clause - both shapes are accepted, see queryir.DecodeFilter). Basic
// form: `basic` holds order and match settings. The two forms are
// mutually exclusive within one document.
type QueryFile struct {
	Filter any        `yaml:"filter"`
	Sort   any        `yaml:"sort"`
	Basic  *BasicSpec `yaml:"basic"`
}

// BasicSpec is the basic-builder document form.
type BasicSpec struct {
	OrderBy       string            `yaml:"order_by"`
	Direction     string            `yaml:"direction"` // "asc" | "desc", default desc
	MatchExact    map[string]string `yaml:"match_exact"`
	MatchContains map[string]string `yaml:"match_contains"`
}

// IsBasic reports whether the document uses the basic form.
func (q *QueryFile) IsBasic() bool {
	return q.Basic != nil
}

// LoadError represents an error that occurred while loading a query file
// or operator table.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeRead         = "E002" // File read error
	ErrCodeEmpty        = "E003" // Query file defines no query
	ErrCodeParse        = "E004" // YAML parse error
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeModeConflict = "E006" // Basic and advanced form in one document
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeTable        = "E008" // Operator table config error

	// Clause errors (mapped from queryir.BuildErrorCode)
	ErrCodeUnsupportedJoin  = "E101"
	ErrCodeTrailingJoin     = "E102"
	ErrCodeUnknownOperator  = "E103"
	ErrCodeMissingValue     = "E104"
	ErrCodeTooManyItems     = "E105"
	ErrCodeInvalidDirection = "E106"
)

// MapBuildErrorCode maps a clause error code to a CLI error code.
func MapBuildErrorCode(code queryir.BuildErrorCode) string {
	switch code {
	case queryir.ErrCodeUnsupportedJoin:
		return ErrCodeUnsupportedJoin
	case queryir.ErrCodeTrailingJoin:
		return ErrCodeTrailingJoin
	case queryir.ErrCodeUnknownOperator:
		return ErrCodeUnknownOperator
	case queryir.ErrCodeMissingValue:
		return ErrCodeMissingValue
	case queryir.ErrCodeTooManyItems:
		return ErrCodeTooManyItems
	case queryir.ErrCodeInvalidDirection:
		return ErrCodeInvalidDirection
	default:
		return ErrCodeGeneric
	}
}

// buildErrorCLICode extracts a CLI error code and message from any error.
func buildErrorCLICode(err error) (string, string) {
	var be *queryir.BuildError
	if errors.As(err, &be) {
		return MapBuildErrorCode(be.Code), be.Message
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code, le.Message
	}
	return ErrCodeGeneric, err.Error()
}

// LoadQueryFile reads and parses one query definition document.
func LoadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading query file: %v", err)}
	}

	var doc QueryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing query file: %v", err)}
	}

	if doc.Basic != nil && (doc.Filter != nil || doc.Sort != nil) {
		return nil, &LoadError{Code: ErrCodeModeConflict, Message: "basic and filter/sort forms are mutually exclusive"}
	}
	if doc.Basic == nil && doc.Filter == nil && doc.Sort == nil {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "query file defines neither basic nor filter/sort query"}
	}

	return &doc, nil
}

// ResolveTable returns the operator table to compile against: the
// --operators override when given, the default set otherwise.
func ResolveTable(opts *RootOptions) (*queryir.Table, error) {
	if opts.Operators == "" {
		return queryir.DefaultTable(), nil
	}
	table, err := optable.Load(opts.Operators)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeTable, Message: err.Error()}
	}
	return table, nil
}

// BuildQuery compiles a loaded query document to its encoded string.
func BuildQuery(doc *QueryFile, table *queryir.Table) (string, error) {
	if doc.IsBasic() {
		return buildBasic(doc.Basic)
	}

	filter, err := queryir.DecodeFilter(doc.Filter)
	if err != nil {
		return "", err
	}
	sortKeys, err := queryir.DecodeSort(doc.Sort)
	if err != nil {
		return "", err
	}

	return sysparm.NewEncoder(table).Encode(filter, sortKeys)
}

// buildBasic compiles the basic document form. Match pairs come from YAML
// maps, so they are sorted by field name for reproducible output.
func buildBasic(spec *BasicSpec) (string, error) {
	var direction queryir.Direction
	switch spec.Direction {
	case "", string(queryir.Desc):
		direction = queryir.Desc
	case string(queryir.Asc):
		direction = queryir.Asc
	default:
		return "", queryir.NewInvalidDirectionError(-1, spec.OrderBy, spec.Direction)
	}

	b := sysparm.Basic{
		OrderBy:       spec.OrderBy,
		Direction:     direction,
		MatchExact:    sysparm.MatchesFromMap(spec.MatchExact),
		MatchContains: sysparm.MatchesFromMap(spec.MatchContains),
	}
	return b.Encode(), nil
}
