package locationedit

import (
	"fmt"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

// State is the position of one activity location in the edit flow.
type State string

const (
	StateCommitted           State = "committed"
	StateSelectingPlace      State = "selectingPlace"
	StateConfirmingPlace     State = "confirmingPlace"
	StatePromptPrecise       State = "promptPrecise"
	StateDraggingPrecise     State = "draggingPrecise"
	StateEnteringCoordinates State = "enteringCoordinates"
	StateConfirmingPrecise   State = "confirmingPrecise"
)

// Answer is the operator's reply to a confirmation prompt.
type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

func ParseAnswer(s string) (Answer, error) {
	switch a := Answer(s); a {
	case AnswerYes, AnswerNo:
		return a, nil
	}
	return "", fmt.Errorf("unknown answer %q", s)
}

// PreciseMethod is how a precise location gets entered.
type PreciseMethod string

const (
	MethodDrag        PreciseMethod = "drag"
	MethodCoordinates PreciseMethod = "coordinates"
)

func ParsePreciseMethod(s string) (PreciseMethod, error) {
	switch p := PreciseMethod(s); p {
	case MethodDrag, MethodCoordinates:
		return p, nil
	}
	return "", fmt.Errorf("unknown precise method %q", s)
}

// PreciseChoice answers the precise-location prompt shown after a new place
// is confirmed.
type PreciseChoice string

const (
	ChoiceDrag        PreciseChoice = "drag"
	ChoiceCoordinates PreciseChoice = "coordinates"
	ChoiceSkip        PreciseChoice = "skip"
)

func ParsePreciseChoice(s string) (PreciseChoice, error) {
	switch c := PreciseChoice(s); c {
	case ChoiceDrag, ChoiceCoordinates, ChoiceSkip:
		return c, nil
	}
	return "", fmt.Errorf("unknown precise choice %q", s)
}

type preciseAction string

const (
	actionAdding  preciseAction = "adding"
	actionEditing preciseAction = "editing"
)

// Outcome is the result of a request: where the location ended up and the
// message to show, if any.
type Outcome struct {
	ActivityLocationID models.ActivityLocationID `json:"activityLocationId"`
	State              State                     `json:"state"`
	Message            string                    `json:"message,omitempty"`
}
