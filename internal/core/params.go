package core

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeRange denotes half-open [lo, hi) ranges.
	ParamTypeRange ParamType = "range"
)

// Parameter describes a single tunable value of a generator configuration.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables of a configuration.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// WriteText renders the snapshot as aligned key/value columns, one group per block.
func (s ParameterSnapshot) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, g := range s.Groups {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", g.Name)
		if g.Summary != "" {
			fmt.Fprintf(tw, "# %s\n", g.Summary)
		}
		for _, p := range g.Params {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Type, p.Value)
		}
	}
	return tw.Flush()
}
