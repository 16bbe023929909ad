package model

// Stage is one of the ordered states a vehicle passes through in the service
// bay. The order is linear with no branching: a vehicle enters at
// StageScheduled and leaves the pipeline at StageReady.
type Stage string

const (
	StageScheduled Stage = "scheduled"
	StageInBay     Stage = "in_bay"
	StageRepairing Stage = "repairing"
	StageReady     Stage = "ready"
)

// Stages is the fixed pipeline order. Exposed so views can render progress
// indicators against the full sequence.
var Stages = []Stage{StageScheduled, StageInBay, StageRepairing, StageReady}

var stageLabels = map[Stage]string{
	StageScheduled: "Scheduled",
	StageInBay:     "In Bay",
	StageRepairing: "Repairing",
	StageReady:     "Ready",
}

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]

	return ok
}

func (s Stage) Label() string {
	return stageLabels[s]
}

func (s Stage) position() int {
	for idx, stage := range Stages {
		if stage == s {
			return idx
		}
	}

	return -1
}

// Next returns the stage one position forward. ok is false at StageReady and
// for unknown stages; there is no wrap-around.
func (s Stage) Next() (Stage, bool) {
	pos := s.position()
	if pos < 0 || pos >= len(Stages)-1 {
		return s, false
	}

	return Stages[pos+1], true
}

// Prev returns the stage one position backward. ok is false at StageScheduled
// and for unknown stages.
func (s Stage) Prev() (Stage, bool) {
	pos := s.position()
	if pos <= 0 {
		return s, false
	}

	return Stages[pos-1], true
}
