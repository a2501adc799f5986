package workload

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
)

// Mismatch records the first divergence between vector and model.
type Mismatch struct {
	Step   int    `json:"step"`
	Op     string `json:"op"`
	Detail string `json:"detail"`
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("step %d (%s): %s", m.Step, m.Op, m.Detail)
}

// Report summarizes a run.
type Report struct {
	Seed     uint64         `json:"seed"`
	Steps    int            `json:"steps"`
	Ops      map[string]int `json:"ops"`
	Errors   int            `json:"expected_errors"`
	Checks   int            `json:"checks"`
	FinalLen int            `json:"final_len"`
	Height   int            `json:"height"`
	Linear   bool           `json:"linear"`
	Elapsed  time.Duration  `json:"elapsed_ns"`
	Mismatch *Mismatch      `json:"mismatch,omitempty"`
}

// OK reports whether the run finished without a mismatch.
func (r *Report) OK() bool {
	return r.Mismatch == nil
}

// WriteText writes the report as an aligned table.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "steps\t%d\n", r.Steps)
	for k := range numKinds {
		if n := r.Ops[k.String()]; n > 0 {
			fmt.Fprintf(tw, "  %s\t%d\n", k, n)
		}
	}
	fmt.Fprintf(tw, "expected errors\t%d\n", r.Errors)
	fmt.Fprintf(tw, "checks\t%d\n", r.Checks)
	fmt.Fprintf(tw, "final length\t%d\n", r.FinalLen)
	fmt.Fprintf(tw, "height\t%d\n", r.Height)
	fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed)
	if r.Mismatch != nil {
		fmt.Fprintf(tw, "MISMATCH\t%s\n", r.Mismatch)
	} else {
		fmt.Fprintf(tw, "result\tok\n")
	}
	return tw.Flush()
}

// WriteJSON writes the report as a single JSON object.
func (r *Report) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}
