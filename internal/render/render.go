// Package render turns the module registry, one state snapshot and the
// expansion set into a Tree.
//
// Render is a pure function of its inputs: resolvers are read-only
// functions of the snapshot and no counters or clocks are consulted, so
// rendering twice with the same inputs yields equal trees. Each resolver
// call is isolated; a resolver that panics or is missing degrades to its
// default ("Unknown", "?", inactive, empty list) without affecting any
// other module.
package render

import (
	"bytes"
	"text/template"

	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/state"
	"go.uber.org/zap"
)

// Defaults for failed resolvers
const (
	UnknownText = "Unknown"
	UnknownIcon = "?"
)

// Expansion reports which sections are open.
type Expansion interface {
	Has(id string) bool
}

// Render builds the Tree for reg given snap and exp.
func Render(reg *module.Registry, res module.Resolvers, snap state.Snapshot, exp Expansion) Tree {
	r := renderer{res: res, snap: snap}

	tree := Tree{
		Status: r.text(reg.Status(), UnknownText),
	}

	for _, d := range reg.Header() {
		expanded := d.Expandable() && exp.Has(d.ID)
		tree.Header = append(tree.Header, Button{
			ID:         d.ID,
			Icon:       r.text(d.Icon, UnknownIcon),
			Label:      d.Title,
			Expandable: d.Expandable(),
			Expanded:   expanded,
			Action:     r.activation(d),
		})
		if expanded {
			tree.HeaderSections = append(tree.HeaderSections, r.section(d))
		}
	}

	for _, s := range reg.Sliders() {
		tree.Sliders = append(tree.Sliders, Slider{
			ID:      s.ID,
			Icon:    s.Icon,
			Label:   s.Label,
			Percent: r.level(s.Level),
			Kind:    s.Kind,
		})
	}

	for _, row := range reg.Rows() {
		var out Row
		for _, d := range row {
			expanded := d.Expandable() && exp.Has(d.ID)
			out.Modules = append(out.Modules, Module{
				ID:         d.ID,
				Icon:       r.text(d.Icon, UnknownIcon),
				Title:      d.Title,
				Subtitle:   r.text(d.Subtitle, UnknownText),
				Active:     r.flag(d.Active),
				Expandable: d.Expandable(),
				Expanded:   expanded,
				Action:     r.activation(d),
			})
			if expanded {
				out.Sections = append(out.Sections, r.section(d))
			}
		}
		tree.Rows = append(tree.Rows, out)
	}

	return tree
}

type renderer struct {
	res  module.Resolvers
	snap state.Snapshot
}

// activation is the action fired when a module or button is activated.
func (r renderer) activation(d module.Descriptor) action.Action {
	switch {
	case d.Expandable():
		return action.Expand(d.ID)
	case d.Toggle != action.KindNone:
		return action.Switch(d.Toggle, !r.flag(d.Active))
	case d.Command != "":
		return action.Launch(d.Command)
	}
	return action.None()
}

func (r renderer) section(d module.Descriptor) Section {
	spec := d.Expand
	sec := Section{ID: d.ID, Title: d.Title}

	switch spec.Kind {
	case module.DynamicListKind:
		list := spec.List
		if list.Switch != nil {
			on := r.flag(list.Switch.Flag)
			sec.Switch = &Switch{
				Label:  list.Switch.Label,
				On:     on,
				Action: action.Switch(list.Switch.Kind, !on),
			}
		}

		items := r.list(list.Source)
		if list.Limit > 0 && len(items) > list.Limit {
			items = items[:list.Limit]
		}
		for _, it := range items {
			sec.Items = append(sec.Items, listItem(d.ID, list, it))
		}
		if len(sec.Items) == 0 {
			sec.Empty = list.Empty
		}

		if list.Settings != "" {
			sec.Footer = append(sec.Footer, Item{Icon: "󰒓", Label: "Settings", Action: action.Launch(list.Settings)})
		}
		if list.Refresh {
			sec.Footer = append(sec.Footer, Item{Icon: "󰑐", Label: "Refresh", Action: action.Refresh()})
		}

	case module.StaticOptionsKind:
		for _, opt := range spec.Options {
			sec.Items = append(sec.Items, Item{
				Icon:   opt.Icon,
				Label:  opt.Label,
				Action: command(opt.Command, opt.Close),
			})
		}

	case module.CustomKind:
		value := r.text(module.Resolved(spec.Custom.Value), UnknownText)
		sec.Value = value
		for _, ca := range spec.Custom.Actions {
			sec.Items = append(sec.Items, Item{
				Icon:   ca.Icon,
				Label:  ca.Label,
				Action: command(expand(d.ID, ca.Template, value), ca.Close),
			})
		}
	}

	return sec
}

// listItem derives the verb and action of a list line from its state.
func listItem(moduleID string, list module.ListSpec, it module.Item) Item {
	out := Item{
		Icon:      it.Icon,
		Label:     it.Label,
		Detail:    it.Detail,
		Connected: it.Connected,
	}

	switch {
	case it.Connected:
		if it.Disconnect != action.KindNone {
			out.Verb = "Disconnect"
			out.Action = action.Target(it.Disconnect, moduleID, it.Ref)
		}
	case it.Unpaired:
		out.Verb = "Pair"
		out.Action = action.Target(it.Connect, moduleID, it.Ref)
	default:
		out.Verb = list.ConnectVerb
		if out.Verb == "" {
			out.Verb = "Connect"
		}
		out.Action = action.Target(it.Connect, moduleID, it.Ref)
	}
	return out
}

func command(cmd string, closePanel bool) action.Action {
	if cmd == "" {
		return action.None()
	}
	if closePanel {
		return action.Launch(cmd)
	}
	return action.Shell(cmd)
}

// expand renders a custom action template with the section value. A
// broken template disables the action.
func expand(moduleID, text, value string) string {
	tmpl, err := template.New(moduleID).Parse(text)
	if err != nil {
		logging.Warn("invalid command template", zap.String("module", moduleID), zap.Error(err))
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Value string }{value}); err != nil {
		logging.Warn("failed to render command template", zap.String("module", moduleID), zap.Error(err))
		return ""
	}
	return buf.String()
}
