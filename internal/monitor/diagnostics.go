package monitor

import "fmt"

// Diagnostic records one skipped or failed unit of work. Batch processing is
// total: instead of aborting, each per-item failure becomes a diagnostic and
// the run continues with the remaining items.
type Diagnostic struct {
	Stage    string   `json:"stage"`
	Athlete  string   `json:"athlete,omitempty"`
	Platform Platform `json:"platform,omitempty"`
	Reason   string   `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.Platform != "" {
		return fmt.Sprintf("%s: %s/%s: %s", d.Stage, d.Athlete, d.Platform, d.Reason)
	}
	if d.Athlete != "" {
		return fmt.Sprintf("%s: %s: %s", d.Stage, d.Athlete, d.Reason)
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Reason)
}

// capture runs fn and converts a panic into a Diagnostic, so a computation
// error in one item can never abort the batch.
func capture(stage, athlete string, platform Platform, fn func()) (diag *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diag = &Diagnostic{
				Stage:    stage,
				Athlete:  athlete,
				Platform: platform,
				Reason:   fmt.Sprintf("recovered: %v", r),
			}
		}
	}()
	fn()
	return nil
}
