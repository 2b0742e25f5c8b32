package ui

import (
	"fmt"

	"courtscraper/pkg/progress"
)

// ConsoleSink renders progress events as colored terminal lines.
type ConsoleSink struct{}

// Notify prints one progress event.
func (ConsoleSink) Notify(e progress.Event) {
	switch e.Phase {
	case progress.PhaseNavigation:
		fmt.Printf("%s %s\n",
			Magenta(fmt.Sprintf("[%d/%d]", e.Step, e.TotalSteps)),
			Cyan(e.Message))
	case progress.PhaseParsing:
		fmt.Println(Cyan(e.Message))
	case progress.PhaseDownload:
		fmt.Printf("%s %s\n",
			Dim(fmt.Sprintf("(%d/%d %.0f%%)", e.Step, e.TotalSteps, e.Percentage)),
			Yellow(e.Message))
	}
}
