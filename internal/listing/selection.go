package listing

import "github.com/user/jobboard/internal/posting"

type State int

const (
	Idle State = iota
	Viewing
)

func (s State) String() string {
	if s == Viewing {
		return "viewing"
	}
	return "idle"
}

// Selection tracks the posting shown in the detail view. The zero value is
// Idle.
type Selection struct {
	current posting.Posting
	state   State
}

// Select shows p, replacing whatever was shown before.
func (s *Selection) Select(p posting.Posting) {
	s.current = p
	s.state = Viewing
}

// Dismiss hides the detail view. It does nothing when already Idle.
func (s *Selection) Dismiss() {
	s.current = posting.Posting{}
	s.state = Idle
}

func (s *Selection) State() State {
	return s.state
}

func (s *Selection) Current() (posting.Posting, bool) {
	if s.state != Viewing {
		return posting.Posting{}, false
	}
	return s.current, true
}
