package module

import (
	"fmt"

	"github.com/muurk/quickpanel/internal/state"
)

// Layout is the raw material of a Registry.
type Layout struct {
	// Status is the text shown at the left of the header (battery).
	Status  Text
	Header  []Descriptor
	Sliders []Slider
	Rows    []Row
}

// Registry is the ordered, immutable module table.
type Registry struct {
	status  Text
	header  []Descriptor
	sliders []Slider
	rows    []Row
	byID    map[string]Descriptor
}

// New validates layout and builds a Registry. Ids must be unique across
// header, sliders and rows; rows hold one or two modules; every
// expandable module carries content for its variant.
func New(layout Layout) (*Registry, error) {
	r := &Registry{
		status: layout.Status,
		byID:   make(map[string]Descriptor),
	}
	seen := make(map[string]bool)

	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("module with empty id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate module id %q", id)
		}
		seen[id] = true
		return nil
	}

	for _, d := range layout.Header {
		if err := claim(d.ID); err != nil {
			return nil, err
		}
		if err := validate(d); err != nil {
			return nil, err
		}
		r.header = append(r.header, d)
		r.byID[d.ID] = d
	}

	for _, s := range layout.Sliders {
		if err := claim(s.ID); err != nil {
			return nil, err
		}
		r.sliders = append(r.sliders, s)
	}

	for i, row := range layout.Rows {
		if len(row) < 1 || len(row) > 2 {
			return nil, fmt.Errorf("row %d has %d modules, want 1 or 2", i, len(row))
		}
		for _, d := range row {
			if err := claim(d.ID); err != nil {
				return nil, err
			}
			if err := validate(d); err != nil {
				return nil, err
			}
			r.byID[d.ID] = d
		}
		r.rows = append(r.rows, append(Row(nil), row...))
	}

	return r, nil
}

func validate(d Descriptor) error {
	if d.Expand == nil {
		return nil
	}
	switch d.Expand.Kind {
	case DynamicListKind:
		if d.Expand.List.Source == "" {
			return fmt.Errorf("module %q: list section without source", d.ID)
		}
	case StaticOptionsKind:
		if len(d.Expand.Options) == 0 {
			return fmt.Errorf("module %q: option section without options", d.ID)
		}
	case CustomKind:
		if d.Expand.Custom.Value == "" {
			return fmt.Errorf("module %q: custom section without value", d.ID)
		}
	default:
		return fmt.Errorf("module %q: unknown section kind %d", d.ID, d.Expand.Kind)
	}
	return nil
}

// Status returns the header status text.
func (r *Registry) Status() Text {
	return r.status
}

// Header returns the header buttons in display order.
func (r *Registry) Header() []Descriptor {
	return append([]Descriptor(nil), r.header...)
}

// Sliders returns the sliders in display order.
func (r *Registry) Sliders() []Slider {
	return append([]Slider(nil), r.sliders...)
}

// Rows returns the module rows in display order.
func (r *Registry) Rows() []Row {
	rows := make([]Row, len(r.rows))
	for i, row := range r.rows {
		rows[i] = append(Row(nil), row...)
	}
	return rows
}

// Find returns the descriptor with the given id.
func (r *Registry) Find(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Needs returns the snapshot request for the given expanded ids. Unknown
// and non-expandable ids contribute nothing.
func (r *Registry) Needs(expanded []string) state.Request {
	req := state.Summary
	for _, id := range expanded {
		if d, ok := r.byID[id]; ok && d.Expand != nil {
			req |= d.Expand.Fetch()
		}
	}
	return req
}
