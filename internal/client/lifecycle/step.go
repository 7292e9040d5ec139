package lifecycle

import (
	"fmt"
)

// Step is the first step of a sequence that has not completed yet.
type Step int

const (
	Step1 Step = iota + 1
	Step2
	Step3
	Step4
	Step5
)

func (s Step) String() string {
	if s < Step1 || s > Step5 {
		return "invalid step"
	}
	return fmt.Sprintf("awaiting step %d", int(s))
}

// Sequence names a resumable step sequence.
type Sequence string

const (
	SequenceLogout        Sequence = "logout"
	SequenceDeleteAccount Sequence = "delete_account"
)

// Progress reports the cursor of every sequence.
type Progress struct {
	Logout        Step
	DeleteAccount Step
}
