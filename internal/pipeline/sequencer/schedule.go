package sequencer

import (
	"errors"
	"fmt"
	"time"

	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
)

// Stage is one scheduled unit of the simulated pipeline. Firing a stage
// appends one log entry and one progress update; the terminal stage also
// reveals the run's results and ends the run.
type Stage struct {
	// Offset is the elapsed time since run start at which the stage fires
	Offset   time.Duration
	Progress int
	Message  string
	Severity domain.Severity
	Terminal bool
}

// ScheduleFunc builds the stage list for a run. recordCount is the number
// of records the run will reveal, available for narrative messages.
type ScheduleFunc func(recordCount int) []Stage

// DefaultSchedule returns the built-in seven-stage narrative, one stage
// every interval, progress climbing 10 to 100.
func DefaultSchedule(interval time.Duration) ScheduleFunc {
	return func(recordCount int) []Stage {
		return []Stage{
			{Offset: 1 * interval, Progress: 10, Message: "Initializing automation engine...", Severity: domain.SeverityInfo},
			{Offset: 2 * interval, Progress: 25, Message: fmt.Sprintf("Detected %d records for processing...", recordCount), Severity: domain.SeverityInfo},
			{Offset: 3 * interval, Progress: 40, Message: "Analyzing document structure with AI/OCR...", Severity: domain.SeverityInfo},
			{Offset: 4 * interval, Progress: 60, Message: "Extracting line items and financial data...", Severity: domain.SeveritySuccess},
			{Offset: 5 * interval, Progress: 80, Message: "Cross-checking with CRM records...", Severity: domain.SeverityInfo},
			{Offset: 6 * interval, Progress: 95, Message: "Validation successful. Mapping results...", Severity: domain.SeveritySuccess},
			{Offset: 7 * interval, Progress: 100, Message: "Process completed. High-fidelity data ready.", Severity: domain.SeverityFinal, Terminal: true},
		}
	}
}

// Validate checks the static preconditions on a schedule: offsets and
// progress non-decreasing, progress ending at 100, and exactly one
// terminal stage in last position.
func Validate(stages []Stage) error {
	if len(stages) == 0 {
		return errors.New("schedule has no stages")
	}

	for i, stage := range stages {
		if i > 0 {
			prev := stages[i-1]
			if stage.Offset < prev.Offset {
				return fmt.Errorf("stage %d offset %v precedes stage %d offset %v", i, stage.Offset, i-1, prev.Offset)
			}
			if stage.Progress < prev.Progress {
				return fmt.Errorf("stage %d progress %d regresses from %d", i, stage.Progress, prev.Progress)
			}
		}
		if stage.Terminal && i != len(stages)-1 {
			return fmt.Errorf("terminal stage at position %d, must be last", i)
		}
	}

	last := stages[len(stages)-1]
	if !last.Terminal {
		return errors.New("last stage is not terminal")
	}
	if last.Progress != 100 {
		return fmt.Errorf("terminal stage progress = %d, want 100", last.Progress)
	}
	return nil
}
