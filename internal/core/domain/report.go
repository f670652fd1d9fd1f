package domain

import "fmt"

// Report summarizes what a reconcile run did.
type Report struct {
	Wiped         bool
	Removed       int
	RemoveFailed  int
	Invalid       int
	Converted     int
	ConvertFailed int
	Copied        int
	CopyFailed    int
}

// Failed returns the number of tasks that did not complete.
func (r Report) Failed() int {
	return r.RemoveFailed + r.ConvertFailed + r.CopyFailed
}

// String renders a one-line summary.
func (r Report) String() string {
	return fmt.Sprintf(
		"removed %d, invalid %d, converted %d, copied %d, failed %d",
		r.Removed, r.Invalid, r.Converted, r.Copied, r.Failed(),
	)
}
