// Package expansion tracks which panel sections are open.
//
// The policy is single-expand: opening a section closes whichever section
// was open before, so the set never holds more than one id.
package expansion

// State is the set of expanded module ids for one panel session. The zero
// value is an empty set ready to use.
type State struct {
	open string
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Toggle collapses id if it is expanded and otherwise expands it in place
// of any other section.
func (s *State) Toggle(id string) {
	if id == "" {
		return
	}
	if s.open == id {
		s.open = ""
		return
	}
	s.open = id
}

// Collapse closes id if it is expanded.
func (s *State) Collapse(id string) {
	if s.open == id {
		s.open = ""
	}
}

// CollapseAll empties the set.
func (s *State) CollapseAll() {
	s.open = ""
}

// Has reports whether id is expanded.
func (s *State) Has(id string) bool {
	return id != "" && s.open == id
}

// IDs returns the expanded ids.
func (s *State) IDs() []string {
	if s.open == "" {
		return nil
	}
	return []string{s.open}
}

// Len returns the number of expanded sections.
func (s *State) Len() int {
	return len(s.IDs())
}
