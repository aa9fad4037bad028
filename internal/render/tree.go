package render

import "github.com/muurk/quickpanel/internal/action"

// Tree is a fully resolved panel: plain values only, no resolvers and no
// references back into the registry.
type Tree struct {
	Status         string
	Header         []Button
	HeaderSections []Section
	Sliders        []Slider
	Rows           []Row
}

// Button is a header button.
type Button struct {
	ID         string
	Icon       string
	Label      string
	Expandable bool
	Expanded   bool
	Action     action.Action
}

// Slider is a percentage control. Its action is built with the new level
// when the user moves it.
type Slider struct {
	ID      string
	Icon    string
	Label   string
	Percent int
	Kind    action.Kind
}

// Row is one row of modules followed by the sections its modules opened.
type Row struct {
	Modules  []Module
	Sections []Section
}

// Module is a resolved tile.
type Module struct {
	ID         string
	Icon       string
	Title      string
	Subtitle   string
	Active     bool
	Expandable bool
	Expanded   bool
	Action     action.Action
}

// Section is the expanded content of a module.
type Section struct {
	ID     string
	Title  string
	Switch *Switch
	// Value is the resolved value of a custom section.
	Value string
	Items []Item
	// Empty is set when a list section has no items.
	Empty  string
	Footer []Item
}

// Switch is the on/off control heading a section.
type Switch struct {
	Label  string
	On     bool
	Action action.Action
}

// Item is one actionable line in a section.
type Item struct {
	Icon      string
	Label     string
	Detail    string
	Verb      string
	Connected bool
	Action    action.Action
}
