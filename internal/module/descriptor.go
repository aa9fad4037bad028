package module

import (
	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/state"
)

// Text is either a static string or the name of a text resolver.
type Text struct {
	Value    string
	Resolver string
}

// Static returns a fixed Text.
func Static(value string) Text {
	return Text{Value: value}
}

// Resolved returns a Text computed by the named resolver.
func Resolved(name string) Text {
	return Text{Resolver: name}
}

// Dynamic reports whether t is computed by a resolver.
func (t Text) Dynamic() bool {
	return t.Resolver != ""
}

// Descriptor is one module: a header button or a tile in a row.
type Descriptor struct {
	ID       string
	Icon     Text
	Title    string
	Subtitle Text
	// Active names the flag resolver that lights the module. Empty means
	// never active.
	Active string
	// Toggle is the switch kind flipped on activation of a
	// non-expandable module.
	Toggle action.Kind
	// Command is launched on activation of a header button.
	Command string
	// Expand is set iff the module opens a section.
	Expand *ExpandSpec
}

// Expandable reports whether the module opens a section.
func (d Descriptor) Expandable() bool {
	return d.Expand != nil
}

// ExpandKind tags the variant held by an ExpandSpec.
type ExpandKind int

const (
	DynamicListKind ExpandKind = iota + 1
	StaticOptionsKind
	CustomKind
)

func (k ExpandKind) String() string {
	switch k {
	case DynamicListKind:
		return "list"
	case StaticOptionsKind:
		return "options"
	case CustomKind:
		return "custom"
	}
	return "none"
}

// ExpandSpec is the content of an expanded section. Exactly one of List,
// Options or Custom is meaningful, selected by Kind.
type ExpandSpec struct {
	Kind    ExpandKind
	List    ListSpec
	Options []Option
	Custom  CustomSpec
}

// Fetch returns the snapshot details the section needs.
func (e *ExpandSpec) Fetch() state.Request {
	switch e.Kind {
	case DynamicListKind:
		return e.List.Fetch
	case CustomKind:
		return e.Custom.Fetch
	}
	return state.Summary
}

// DynamicList builds a list section.
func DynamicList(spec ListSpec) *ExpandSpec {
	return &ExpandSpec{Kind: DynamicListKind, List: spec}
}

// StaticOptions builds a fixed option section.
func StaticOptions(options ...Option) *ExpandSpec {
	return &ExpandSpec{Kind: StaticOptionsKind, Options: options}
}

// Custom builds a value-plus-actions section.
func Custom(spec CustomSpec) *ExpandSpec {
	return &ExpandSpec{Kind: CustomKind, Custom: spec}
}

// ListSpec describes a section listing items from a list resolver.
type ListSpec struct {
	// Source names the list resolver.
	Source string
	// Fetch is the detail request that populates Source.
	Fetch state.Request
	// Switch, if set, heads the section with an on/off control.
	Switch *SwitchSpec
	// Settings is a launcher shown under the list.
	Settings string
	// Refresh adds a rebuild button under the list.
	Refresh bool
	// Limit caps the number of items shown; zero means no cap.
	Limit int
	// Empty is shown when the list has no items.
	Empty string
	// ConnectVerb labels items that are not connected; "Connect" if empty.
	ConnectVerb string
}

// SwitchSpec is an on/off control bound to a flag resolver.
type SwitchSpec struct {
	Label string
	Flag  string
	Kind  action.Kind
}

// Option is one entry of a static option section.
type Option struct {
	Icon    string
	Label   string
	Command string
	// Close launches Command detached and closes the panel; otherwise it
	// runs to completion and the panel rebuilds.
	Close bool
}

// CustomSpec describes a section showing one resolved value with actions
// whose command templates may embed it as {{.Value}}.
type CustomSpec struct {
	// Value names the text resolver.
	Value   string
	Fetch   state.Request
	Actions []CustomAction
}

// CustomAction is a templated command under a custom section.
type CustomAction struct {
	Icon     string
	Label    string
	Template string
	Close    bool
}

// Item is one line produced by a list resolver.
type Item struct {
	Icon   string
	Label  string
	Detail string
	// Ref is the identifier passed to Connect or Disconnect.
	Ref       string
	Connected bool
	// Unpaired items are offered "Pair" instead of "Connect".
	Unpaired   bool
	Connect    action.Kind
	Disconnect action.Kind
}

// Slider is a percentage control.
type Slider struct {
	ID    string
	Icon  string
	Label string
	// Level names the level resolver.
	Level string
	Kind  action.Kind
}

// Row is one to two modules rendered side by side.
type Row []Descriptor
