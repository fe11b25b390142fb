package checkout

// Stage is a step of the checkout pipeline
type Stage string

const (
	StageContact Stage = "contact"
	StageAddress Stage = "address"
	StagePayment Stage = "payment"
	StagePlaced  Stage = "placed"
)

// IsValid checks if the stage is a known value
func (s Stage) IsValid() bool {
	switch s {
	case StageContact, StageAddress, StagePayment, StagePlaced:
		return true
	}
	return false
}

// String returns the string representation
func (s Stage) String() string {
	return string(s)
}

// Next returns the stage a successful submission advances to
func (s Stage) Next() Stage {
	switch s {
	case StageContact:
		return StageAddress
	case StageAddress:
		return StagePayment
	case StagePayment:
		return StagePlaced
	}
	return s
}

// IsTerminal reports whether no further transitions are possible
func (s Stage) IsTerminal() bool {
	return s == StagePlaced
}

// CanTransitionTo checks the forward edge of the state machine.
// Going back is handled by Pipeline.Revisit, which also inspects the draft.
func (s Stage) CanTransitionTo(target Stage) bool {
	return !s.IsTerminal() && s.Next() == target
}
