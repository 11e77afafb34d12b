// Package choice lets the user resolve a multi-hit search down to one record.
package choice

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/samber/lo"
)

// Outcome is how a pick ended.
type Outcome int

const (
	// Picked - the user selected a record.
	Picked Outcome = iota
	// Skipped - the user explicitly declined every candidate.
	Skipped
	// Cancelled - the user aborted the whole interaction.
	Cancelled
)

// Picker resolves a list of candidate records to at most one. Implementations
// must support all three outcomes: a selection, an explicit skip, and a
// cancellation of the surrounding operation.
type Picker interface {
	Pick(records []media.Record) (media.Record, Outcome, error)
}

// skipLabel is the pseudo-entry appended after the real candidates.
const skipLabel = "Skip"

// SurveyPicker prompts on the terminal.
type SurveyPicker struct {
	// Message overrides the default prompt line.
	Message string
}

func (p *SurveyPicker) Pick(records []media.Record) (media.Record, Outcome, error) {
	if len(records) == 0 {
		return nil, Skipped, nil
	}

	message := p.Message
	if message == "" {
		message = "Pick a result"
	}

	options := lo.Map(records, func(r media.Record, _ int) string {
		base := r.Base()
		return fmt.Sprintf("%s [%s, %s]", base.String(), r.Type(), base.DataSource)
	})
	options = append(options, skipLabel)

	var selected int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}, &selected)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, Cancelled, nil
		}
		return nil, Cancelled, err
	}

	if selected == len(records) {
		return nil, Skipped, nil
	}

	return records[selected], Picked, nil
}

// FirstPicker takes the top record without prompting, for --no-interactive runs.
type FirstPicker struct{}

func (FirstPicker) Pick(records []media.Record) (media.Record, Outcome, error) {
	if len(records) == 0 {
		return nil, Skipped, nil
	}
	return records[0], Picked, nil
}
