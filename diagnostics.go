package lts

import (
	"fmt"

	"github.com/paulmach/osm"
)

// DiagnosticSeverity splits diagnostics into the ones worth a second look and
// pure bookkeeping. No diagnostic aborts a run.
type DiagnosticSeverity uint16

const (
	DIAG_INFO = DiagnosticSeverity(iota + 1)
	DIAG_WARNING
)

func (iotaIdx DiagnosticSeverity) String() string {
	return [...]string{"info", "warning"}[iotaIdx-1]
}

// DiagnosticCode names the condition a diagnostic reports.
type DiagnosticCode uint16

const (
	DIAG_MALFORMED_INPUT = DiagnosticCode(iota + 1)
	DIAG_AMBIGUOUS_ATTRIBUTE
	DIAG_EXCLUDED_WAY
	DIAG_UNMATCHED_RULE
)

func (iotaIdx DiagnosticCode) String() string {
	return [...]string{"malformed_input", "ambiguous_attribute", "excluded_way", "unmatched_rule"}[iotaIdx-1]
}

// Diagnostic is a single non-fatal observation made while processing a way.
type Diagnostic struct {
	Message  string
	WayID    osm.WayID
	Code     DiagnosticCode
	Severity DiagnosticSeverity
}

// Diagnostics accumulates observations across the pipeline stages.
type Diagnostics struct {
	entries []Diagnostic
	verbose bool
}

func NewDiagnostics(verbose bool) *Diagnostics {
	return &Diagnostics{
		entries: []Diagnostic{},
		verbose: verbose,
	}
}

func (diag *Diagnostics) warnf(code DiagnosticCode, wayID osm.WayID, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	diag.entries = append(diag.entries, Diagnostic{
		Message:  message,
		WayID:    wayID,
		Code:     code,
		Severity: DIAG_WARNING,
	})
	if diag.verbose {
		fmt.Printf("\n\t[WARNING]: %s. Way ID: '%d'\n", message, wayID)
	}
}

func (diag *Diagnostics) infof(code DiagnosticCode, wayID osm.WayID, format string, args ...interface{}) {
	diag.entries = append(diag.entries, Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		WayID:    wayID,
		Code:     code,
		Severity: DIAG_INFO,
	})
}

func (diag *Diagnostics) merge(other *Diagnostics) {
	diag.entries = append(diag.entries, other.entries...)
}

// Entries returns every accumulated diagnostic in the order of recording.
func (diag *Diagnostics) Entries() []Diagnostic {
	return diag.entries
}

// CountBySeverity returns the number of accumulated diagnostics of the given
// severity.
func (diag *Diagnostics) CountBySeverity(severity DiagnosticSeverity) int {
	count := 0
	for _, entry := range diag.entries {
		if entry.Severity == severity {
			count++
		}
	}
	return count
}
