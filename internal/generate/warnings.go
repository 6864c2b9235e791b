package generate

import "fmt"

// Warning reports a descriptor entry that could not be turned into a
// manifest fragment. Generation is best-effort: one malformed port or
// expose entry never aborts the run, but it is surfaced instead of
// silently dropped.
type Warning struct {
	App     string // app or "{app}-{sidecar}" owner, filled by the generators
	Field   string // e.g. "ports[1]", "expose[0]"
	Message string
}

func (w Warning) String() string {
	if w.App == "" {
		return fmt.Sprintf("%s: %s", w.Field, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.App, w.Field, w.Message)
}

func tagWarnings(owner string, warnings []Warning) []Warning {
	for i := range warnings {
		if warnings[i].App == "" {
			warnings[i].App = owner
		}
	}
	return warnings
}
