package state

import (
	"maps"
	"slices"

	"github.com/ethanbaker/til/pkg/facts"
)

// NoticeKind classifies a user-visible notice
type NoticeKind string

const (
	NoticeLoadFailed   NoticeKind = "load_failed"
	NoticeValidation   NoticeKind = "validation"
	NoticeSubmitFailed NoticeKind = "submit_failed"
	NoticeVoteFailed   NoticeKind = "vote_failed"
)

// LoadFailedMessage is shown when facts cannot be read from the store
const LoadFailedMessage = "There was a problem getting data"

// Notice is a message the presentation layer shows until it is dismissed
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

// Snapshot is a point-in-time copy of the controller state. Subscribers own
// the value they receive
type Snapshot struct {
	Facts           []facts.Fact
	IsLoading       bool
	CurrentCategory string
	ShowForm        bool
	Form            facts.Draft
	IsUploading     bool
	Updating        map[int64]bool
	Notice          *Notice
	Version         uint64 // Incremented on every change
}

// IsUpdating reports whether a vote on the fact is in flight
func (s Snapshot) IsUpdating(id int64) bool {
	return s.Updating[id]
}

// RemainingChars returns the characters left in the form's text
func (s Snapshot) RemainingChars() int {
	return s.Form.RemainingChars()
}

// Fact returns the local entry with the given id
func (s Snapshot) Fact(id int64) (facts.Fact, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return facts.Fact{}, false
	}
	return s.Facts[i], true
}

func (s Snapshot) indexOf(id int64) int {
	return slices.IndexFunc(s.Facts, func(f facts.Fact) bool { return f.ID == id })
}

// clone deep-copies the mutable parts so a published snapshot never aliases controller state
func (s Snapshot) clone() Snapshot {
	s.Facts = slices.Clone(s.Facts)
	s.Updating = maps.Clone(s.Updating)
	if s.Notice != nil {
		n := *s.Notice
		s.Notice = &n
	}
	return s
}

// dedupe drops facts whose id was already seen, keeping the first
func dedupe(list []facts.Fact) []facts.Fact {
	seen := make(map[int64]struct{}, len(list))
	out := make([]facts.Fact, 0, len(list))
	for _, f := range list {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out
}
