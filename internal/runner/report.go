package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText prints one line per checkpoint: budget, value and item indices.
func WriteText(w io.Writer, res Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "BUDGET\tVALUE\tITEMS\n")
	for _, e := range res.Table.Entries {
		fmt.Fprintf(tw, "%g\t%.6g\t%v\n", e.Budget, e.Value, e.Items)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "checkpoints=%d granularity=%g cached=%t\n",
		res.Table.Len(), res.Granularity, res.Cached)

	return err
}

// WriteJSON encodes res as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}
