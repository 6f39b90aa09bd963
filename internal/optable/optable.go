// Package optable loads operator tables from CUE configuration files.
//
// The operator table is static configuration: it is loaded once at process
// start and treated as read-only afterwards. Files are validated against an
// embedded CUE schema before any Go-side processing, so malformed entries
// (missing token, wrong types) are rejected with positions.
//
// Load accepts either a single .cue file or a directory of .cue files; a
// directory is built as one CUE instance, so entries may be split across
// files and still unify into one table.
package optable

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/snquery/snquery/internal/queryir"
)

//go:embed schema.cue
var schemaCUE string

// ConfigError represents an invalid operator table configuration.
type ConfigError struct {
	// Field names the offending config path (e.g. `operators."-eq".token`).
	Field string

	// Message is a human-readable description.
	Message string

	// Pos is the source position, when available.
	Pos token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Load reads an operator table from path, which may be a single .cue file
// or a directory of .cue files.
func Load(path string) (*queryir.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("operator table not found: %v", err)}
	}

	ctx := cuecontext.New()

	var value cue.Value
	if info.IsDir() {
		value, err = buildDir(ctx, path)
	} else {
		value, err = buildFile(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	return Compile(ctx, value)
}

// buildFile compiles a single CUE file.
func buildFile(ctx *cue.Context, path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, &ConfigError{Message: fmt.Sprintf("reading operator table: %v", err)}
	}
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cue.Value{}, &ConfigError{Message: fmt.Sprintf("parsing operator table: %v", err)}
	}
	return value, nil
}

// buildDir loads all .cue files under dir as one instance.
func buildDir(ctx *cue.Context, dir string) (cue.Value, error) {
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return cue.Value{}, &ConfigError{Message: fmt.Sprintf("no CUE instances in %s", dir)}
	}
	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, &ConfigError{Message: fmt.Sprintf("loading operator table: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return cue.Value{}, &ConfigError{Message: fmt.Sprintf("building operator table: %v", err)}
	}
	return value, nil
}

// Compile validates a CUE value against the operator table schema and
// converts it to a queryir.Table. Entries keep their declaration order.
func Compile(ctx *cue.Context, value cue.Value) (*queryir.Table, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is a compile-time constant.
		panic(fmt.Sprintf("optable: invalid embedded schema: %v", err))
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &ConfigError{
			Message: fmt.Sprintf("operator table does not match schema: %v", err),
			Pos:     value.Pos(),
		}
	}

	opsVal := unified.LookupPath(cue.ParsePath("operators"))
	if !opsVal.Exists() {
		return nil, &ConfigError{
			Field:   "operators",
			Message: "operators section is required",
			Pos:     value.Pos(),
		}
	}

	iter, err := opsVal.Fields()
	if err != nil {
		return nil, &ConfigError{
			Field:   "operators",
			Message: fmt.Sprintf("iterating operators: %v", err),
			Pos:     opsVal.Pos(),
		}
	}

	var ops []queryir.Operator
	for iter.Next() {
		name := iter.Selector().Unquoted()
		entry := iter.Value()

		tok, err := entry.LookupPath(cue.ParsePath("token")).String()
		if err != nil {
			return nil, &ConfigError{
				Field:   fmt.Sprintf("operators.%q.token", name),
				Message: fmt.Sprintf("invalid token: %v", err),
				Pos:     entry.Pos(),
			}
		}

		requires, err := entry.LookupPath(cue.ParsePath("requiresValue")).Bool()
		if err != nil {
			return nil, &ConfigError{
				Field:   fmt.Sprintf("operators.%q.requiresValue", name),
				Message: fmt.Sprintf("invalid requiresValue: %v", err),
				Pos:     entry.Pos(),
			}
		}

		ops = append(ops, queryir.Operator{
			Name:          name,
			QueryOperator: tok,
			RequiresValue: requires,
		})
	}

	if len(ops) == 0 {
		return nil, &ConfigError{
			Field:   "operators",
			Message: "operator table is empty",
			Pos:     opsVal.Pos(),
		}
	}

	table, err := queryir.NewTable(ops)
	if err != nil {
		return nil, &ConfigError{
			Field:   "operators",
			Message: err.Error(),
			Pos:     opsVal.Pos(),
		}
	}
	return table, nil
}
