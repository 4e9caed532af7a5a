package workout

// StatePatch is a partial State update. Nil fields are left unchanged.
type StatePatch struct {
	Status       *Status
	CurrentRound *int
	Remaining    *int
	IsWorkPhase  *bool
}

// Finished reports whether the patch ends the session.
func (p StatePatch) Finished() bool {
	return p.Status != nil && *p.Status == StatusFinished
}

// Empty reports whether the patch changes nothing.
func (p StatePatch) Empty() bool {
	return p.Status == nil && p.CurrentRound == nil && p.Remaining == nil && p.IsWorkPhase == nil
}

// Apply returns s with the patch applied.
func (p StatePatch) Apply(s State) State {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.CurrentRound != nil {
		s.CurrentRound = *p.CurrentRound
	}
	if p.Remaining != nil {
		s.Remaining = *p.Remaining
	}
	if p.IsWorkPhase != nil {
		s.IsWorkPhase = *p.IsWorkPhase
	}
	return s
}

func finishedPatch() StatePatch {
	st := StatusFinished
	return StatePatch{Status: &st}
}

func advancePatch(round, remaining int) StatePatch {
	return StatePatch{CurrentRound: &round, Remaining: &remaining}
}

func phasePatch(work bool, remaining int) StatePatch {
	return StatePatch{IsWorkPhase: &work, Remaining: &remaining}
}
