package formstate

import (
	"fmt"
	"strings"
)

// ApplyResult summarizes what a merge touched. Advisory only: it feeds the
// user-visible "form updated" notice, never correctness decisions.
type ApplyResult struct {
	PaintRows    int  `json:"paintRows"`
	PartsRows    int  `json:"partsRows"`
	Items        int  `json:"items"`
	HeaderFields int  `json:"headerFields"`
	VINChanged   bool `json:"vinChanged"`
}

func (r ApplyResult) Empty() bool {
	return r.PaintRows == 0 && r.PartsRows == 0 && r.Items == 0 && r.HeaderFields == 0 && !r.VINChanged
}

func (r ApplyResult) Summary() string {
	var parts []string
	if r.PaintRows > 0 {
		parts = append(parts, fmt.Sprintf("%d paint micron row(s)", r.PaintRows))
	}
	if r.PartsRows > 0 {
		parts = append(parts, fmt.Sprintf("%d parts change row(s)", r.PartsRows))
	}
	if r.Items > 0 {
		parts = append(parts, fmt.Sprintf("%d inspection item(s)", r.Items))
	}
	if r.HeaderFields > 0 {
		parts = append(parts, fmt.Sprintf("%d header field(s)", r.HeaderFields))
	}
	if r.VINChanged {
		parts = append(parts, "VIN")
	}
	if len(parts) == 0 {
		return "no fields updated"
	}
	return "updated " + strings.Join(parts, ", ")
}
