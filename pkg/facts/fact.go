package facts

import (
	"fmt"
	"strings"
)

// Counter names one of the vote columns on a fact
type Counter string

const (
	VotesInteresting Counter = "votesInteresting"
	VotesMindBlowing Counter = "votesMindBlowing"
	VotesFalse       Counter = "votesFalse"
)

// Counters lists every vote counter in display order
var Counters = []Counter{VotesInteresting, VotesMindBlowing, VotesFalse}

// Valid reports whether the counter is one of the known vote columns
func (c Counter) Valid() bool {
	switch c {
	case VotesInteresting, VotesMindBlowing, VotesFalse:
		return true
	}
	return false
}

// ParseCounter accepts a column name ("votesFalse") or a short alias ("false")
func ParseCounter(s string) (Counter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "votesinteresting", "interesting":
		return VotesInteresting, nil
	case "votesmindblowing", "mindblowing", "mind-blowing":
		return VotesMindBlowing, nil
	case "votesfalse", "false":
		return VotesFalse, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCounter, s)
}

// Fact is a single shared fact with its vote counters
type Fact struct {
	ID       int64  `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Source   string `json:"source" yaml:"source"`
	Category string `json:"category" yaml:"category"`

	VotesInteresting int `json:"votesInteresting" yaml:"votesInteresting"`
	VotesMindBlowing int `json:"votesMindBlowing" yaml:"votesMindBlowing"`
	VotesFalse       int `json:"votesFalse" yaml:"votesFalse"`

	CreatedIn int `json:"createdIn,omitempty" yaml:"createdIn,omitempty"` // Year the store accepted the fact
}

// Votes returns the value of a single counter
func (f Fact) Votes(c Counter) int {
	switch c {
	case VotesInteresting:
		return f.VotesInteresting
	case VotesMindBlowing:
		return f.VotesMindBlowing
	case VotesFalse:
		return f.VotesFalse
	}
	return 0
}

// SetVotes overwrites a single counter. Unknown counters are ignored
func (f *Fact) SetVotes(c Counter, value int) {
	switch c {
	case VotesInteresting:
		f.VotesInteresting = value
	case VotesMindBlowing:
		f.VotesMindBlowing = value
	case VotesFalse:
		f.VotesFalse = value
	}
}

// Disputed is true when the false votes outweigh both positive counters combined.
// It is derived on every read and never stored
func (f Fact) Disputed() bool {
	return f.VotesFalse > f.VotesInteresting+f.VotesMindBlowing
}
