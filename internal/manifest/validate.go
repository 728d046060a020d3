package manifest

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed application.cue
var applicationSchema string

// schemaPath is the root definition in application.cue.
const schemaPath = "#Application"

// Issue is a single schema violation.
type Issue struct {
	// Path is the dotted path to the offending field, e.g. "app.name" or "modules[2]".
	Path string

	// Message describes the mismatch.
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError reports every field of a manifest that does not match the schema.
type ValidationError struct {
	// File is the manifest path, used for messages only.
	File string

	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("invalid %s: %s", e.File, e.Issues[0])
	}
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return fmt.Sprintf("invalid %s:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Validate checks raw manifest data against the application schema and
// decodes it. file is only used in error messages.
//
// A nil raw map validates as an empty document. Schema violations are
// returned as *ValidationError. Optional fields set to null decode as unset.
func Validate(raw map[string]any, file string) (*Application, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(applicationSchema, cue.Filename("application.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("internal error: compile schema: %w", schema.Err())
	}

	root := schema.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	missing := missingFields(root, raw, nil)

	data := ctx.Encode(raw)
	if data.Err() != nil {
		return nil, newValidationError(data.Err(), missing, file)
	}

	unified := root.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil || len(missing) > 0 {
		return nil, newValidationError(err, missing, file)
	}

	var app Application
	if err := root.Unify(ctx.Encode(dropNullFields(root, raw))).Decode(&app); err != nil {
		return nil, newValidationError(err, nil, file)
	}

	return &app, nil
}

// missingFields returns an issue for every required field of schema absent
// from data. Absent structs report each of their required fields.
func missingFields(schema cue.Value, data map[string]any, path []string) []Issue {
	it, err := schema.Fields()
	if err != nil {
		return nil
	}

	var issues []Issue
	for it.Next() {
		name := it.Label()
		fieldPath := append(append([]string(nil), path...), name)

		value, ok := data[name]
		if !ok {
			if it.Value().IncompleteKind() == cue.StructKind {
				issues = append(issues, missingFields(it.Value(), nil, fieldPath)...)
				continue
			}
			issues = append(issues, Issue{Path: formatPath(fieldPath), Message: "field is required but not present"})
			continue
		}

		if nested, ok := value.(map[string]any); ok && it.Value().IncompleteKind() == cue.StructKind {
			issues = append(issues, missingFields(it.Value(), nested, fieldPath)...)
		}
	}
	return issues
}

// dropNullFields returns a copy of data without the declared optional fields
// of schema that are set to null. Values under pattern fields, such as build
// arguments, keep their nulls.
func dropNullFields(schema cue.Value, data map[string]any) map[string]any {
	it, err := schema.Fields(cue.Optional(true))
	if err != nil {
		return data
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}

	for it.Next() {
		name := it.Label()
		value, ok := out[name]
		if !ok {
			continue
		}
		if value == nil {
			if it.IsOptional() {
				delete(out, name)
			}
			continue
		}
		if nested, ok := value.(map[string]any); ok && it.Value().IncompleteKind() == cue.StructKind {
			out[name] = dropNullFields(it.Value(), nested)
		}
	}
	return out
}

// newValidationError flattens CUE errors into issues with dotted paths,
// one per field, sorted by path. missing issues take precedence.
func newValidationError(err error, missing []Issue, file string) *ValidationError {
	verr := &ValidationError{File: file}

	seen := make(map[string]bool)
	add := func(issue Issue) {
		if seen[issue.Path] {
			return
		}
		seen[issue.Path] = true
		verr.Issues = append(verr.Issues, issue)
	}

	for _, issue := range missing {
		add(issue)
	}
	if err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			add(Issue{Path: formatPath(cueerrors.Path(e)), Message: fmt.Sprintf(format, args...)})
		}
	}

	if len(verr.Issues) == 0 && err != nil {
		verr.Issues = append(verr.Issues, Issue{Message: err.Error()})
	}

	sort.SliceStable(verr.Issues, func(i, j int) bool {
		return verr.Issues[i].Path < verr.Issues[j].Path
	})

	return verr
}

// formatPath converts ["#Application", "modules", "2"] into "modules[2]".
func formatPath(path []string) string {
	if len(path) > 0 && path[0] == schemaPath {
		path = path[1:]
	}

	var b strings.Builder
	for i, part := range path {
		if isIndex(part) && i > 0 {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
