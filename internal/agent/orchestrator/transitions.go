package orchestrator

import (
	"github.com/autostream-agent/server/internal/agent/model"
)

// inputClass is the left-hand side of the transition table together with the
// current state. For IDLE and COMPLETE it is the (normalised) intent label;
// for AWAITING_* it is the outcome of slot validation. Slot-filling always
// wins over reclassification: an inquiry-looking message arriving mid-episode
// is validated as a slot value, never routed to retrieval.
type inputClass string

const (
	classGreeting    = inputClass(model.IntentGreeting)
	classInquiry     = inputClass(model.IntentInquiry)
	classHighIntent  = inputClass(model.IntentHighIntent)
	classUnknown     = inputClass(model.IntentUnknown)
	classSlotValid   inputClass = "slot_valid"
	classSlotInvalid inputClass = "slot_invalid"
)

// actionID names the side effect executed alongside a transition.
type actionID int

const (
	actWelcome actionID = iota
	actAnswerInquiry
	actClarify
	actStartEpisode
	actAcceptSlot
	actRepromptSlot
)

// transition is one table entry: the state entered when the action succeeds.
// Actions may land elsewhere on failure (tool failure keeps AWAITING_PLATFORM;
// exhausted slot retries abandon to IDLE).
type transition struct {
	next model.SessionState
	act  actionID
}

// idleRow is the resting-state row. COMPLETE behaves the same way except that
// non-high-intent messages leave it in COMPLETE, so the captured lead stays
// tied to its terminal state until a fresh episode replaces it.
var idleRow = map[inputClass]transition{
	classGreeting:   {model.StateIdle, actWelcome},
	classInquiry:    {model.StateIdle, actAnswerInquiry},
	classHighIntent: {model.StateAwaitingName, actStartEpisode},
	classUnknown:    {model.StateIdle, actClarify},
}

var completeRow = map[inputClass]transition{
	classGreeting:   {model.StateComplete, actWelcome},
	classInquiry:    {model.StateComplete, actAnswerInquiry},
	classHighIntent: {model.StateAwaitingName, actStartEpisode},
	classUnknown:    {model.StateComplete, actClarify},
}

var transitionTable = map[model.SessionState]map[inputClass]transition{
	model.StateIdle:     idleRow,
	model.StateComplete: completeRow,
	model.StateAwaitingName: {
		classSlotValid:   {model.StateAwaitingEmail, actAcceptSlot},
		classSlotInvalid: {model.StateAwaitingName, actRepromptSlot},
	},
	model.StateAwaitingEmail: {
		classSlotValid:   {model.StateAwaitingPlatform, actAcceptSlot},
		classSlotInvalid: {model.StateAwaitingEmail, actRepromptSlot},
	},
	model.StateAwaitingPlatform: {
		classSlotValid:   {model.StateComplete, actAcceptSlot},
		classSlotInvalid: {model.StateAwaitingPlatform, actRepromptSlot},
	},
}
