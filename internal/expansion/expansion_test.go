package expansion

import (
	"reflect"
	"testing"
)

func TestToggleTwice(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		id    string
		want  []string
	}{
		// Self-inverse on an empty set or a set holding only id
		{"empty set", nil, "network", nil},
		{"same id open", []string{"network"}, "network", []string{"network"}},
		// The replaced section is not restored
		{"other id open", []string{"bluetooth"}, "network", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, id := range tt.setup {
				s.Toggle(id)
			}

			s.Toggle(tt.id)
			s.Toggle(tt.id)

			if got := s.IDs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSingleExpandPolicy(t *testing.T) {
	s := New()
	s.Toggle("network")
	s.Toggle("bluetooth")

	if got := s.IDs(); !reflect.DeepEqual(got, []string{"bluetooth"}) {
		t.Errorf("IDs() = %v, want [bluetooth]", got)
	}
	if s.Has("network") {
		t.Error("network should have been collapsed")
	}
}

func TestCollapse(t *testing.T) {
	s := New()
	s.Toggle("power")

	s.Collapse("network")
	if !s.Has("power") {
		t.Error("Collapse of another id should not close power")
	}

	s.Collapse("power")
	if s.Has("power") || s.Len() != 0 {
		t.Errorf("IDs() = %v, want empty", s.IDs())
	}
}

func TestCollapseAll(t *testing.T) {
	s := New()
	s.Toggle("color")
	s.CollapseAll()

	if s.Len() != 0 {
		t.Errorf("IDs() = %v, want empty", s.IDs())
	}
}

func TestEmptyID(t *testing.T) {
	var s State
	s.Toggle("")

	if s.Has("") || s.Len() != 0 {
		t.Error("empty id must never be expanded")
	}
}
