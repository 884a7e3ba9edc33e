package song

import "fmt"

// InvalidRangeError reports an event start/duration outside the pattern's
// step grid. Recoverable: callers clamp or drop the offending event.
type InvalidRangeError struct {
	Start      int
	Duration   int
	TotalSteps int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("event at step %d (duration %d) outside pattern of %d steps",
		e.Start, e.Duration, e.TotalSteps)
}
