package cv2docx

import (
	"fmt"
	"io"
)

// RecordResult is the immutable outcome of processing one profile record.
type RecordResult struct {
	Name       string   // record identifier (candidate name, or a placeholder)
	OutputPath string   // rendered document path, empty on failure
	PhotoPath  string   // embedded photo path, empty when photo-less
	Err        error    // nil on success
	Warnings   []string // non-fatal conditions (e.g., photo downgraded)
}

// Failed reports whether the record failed.
func (r RecordResult) Failed() bool {
	return r.Err != nil
}

// RunReport aggregates per-record outcomes of one batch run, in input order.
type RunReport struct {
	Results []RecordResult
}

// Summary holds the success/failure counts of a run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summary tallies succeeded and failed records.
func (r *RunReport) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		if res.Failed() {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// Fprint writes a human-readable run report. Failures always go out;
// successes are skipped in quiet mode. With more than one record a final
// count line is appended.
func (r *RunReport) Fprint(out, errOut io.Writer, quiet bool) {
	for _, res := range r.Results {
		if res.Failed() {
			fmt.Fprintf(errOut, "FAILED %s: %v\n", res.Name, res.Err)
			continue
		}
		if quiet {
			continue
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(errOut, "WARN %s: %s\n", res.Name, w)
		}
		fmt.Fprintf(out, "Created %s\n", res.OutputPath)
	}

	if !quiet && len(r.Results) > 1 {
		s := r.Summary()
		fmt.Fprintf(out, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
}
