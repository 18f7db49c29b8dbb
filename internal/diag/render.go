package diag

import (
	"fmt"
	"io"
	"strconv"
)

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// Summary renders the single pipe-delimited line ticket tooling scrapes.
// Field order is part of the contract; do not reorder. The HTTPS label names
// whichever port was actually checked, matching the transcript lines.
func (r *Result) Summary() string {
	port := r.HTTPSPort
	if port <= 0 {
		port = 443
	}
	return fmt.Sprintf("SUMMARY: Target=%s | HTTPS(%d)=%s | SNMP(161)=%s | Scope=%s | From=%s",
		r.Target, port, passFail(r.HTTPSPass), passFail(r.SNMPPass), r.Scope, r.From)
}

// WriteText writes the human-readable diagnostic transcript followed by the
// SUMMARY line.
func (r *Result) WriteText(w io.Writer) {
	for _, check := range r.Checks {
		fmt.Fprintf(w, "[%s] %s: %s\n", passFail(check.Passed), check.Name, check.Detail)
		if check.Hint != "" && !check.Passed {
			fmt.Fprintf(w, "       hint: %s\n", check.Hint)
		}
	}
	if r.Identity != nil {
		if r.Identity.Name != "" {
			fmt.Fprintf(w, "       name: %s\n", r.Identity.Name)
		}
		if r.Identity.SerialNumber != "" {
			fmt.Fprintf(w, "       serial: %s\n", r.Identity.SerialNumber)
		}
		if r.Identity.PageCount != nil {
			fmt.Fprintf(w, "       pages printed: %d\n", *r.Identity.PageCount)
		}
	}
	if r.Supplies != nil {
		for i := range r.Supplies.Rows {
			row := &r.Supplies.Rows[i]
			description := row.Description
			if description == "" {
				description = "supply " + row.Index
			}
			if pct := row.Percent(); pct != nil {
				fmt.Fprintf(w, "       supply: %s = %s%% (%s of %d)\n",
					description, strconv.FormatFloat(*pct, 'f', 1, 64), row.LevelDisplay(), *row.Max)
			} else {
				fmt.Fprintf(w, "       supply: %s = %s\n", description, row.LevelDisplay())
			}
		}
		if !r.Supplies.Complete {
			fmt.Fprintln(w, "       note: supplies table may be incomplete")
		}
	}
	fmt.Fprintln(w, r.Summary())
}
