package panel

import (
	"strconv"

	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/render"
)

type targetKind int

const (
	targetButton targetKind = iota
	targetSlider
	targetModule
	targetSwitch
	targetItem
)

// target is one focusable, clickable node of the tree. zone doubles as
// the bubblezone id and as the identity kept across rebuilds.
type target struct {
	zone   string
	kind   targetKind
	action action.Action
	slider int
}

func buttonZone(id string) string { return "button/" + id }
func sliderZone(id string) string { return "slider/" + id }
func moduleZone(id string) string { return "module/" + id }
func switchZone(id string) string { return "switch/" + id }

func itemZone(section, key string) string {
	return "item/" + section + "/" + key
}

// itemZones names the items of sec by what they act on rather than by
// position, so focus follows an item when the list reorders. Repeated or
// missing targets fall back to the index.
func itemZones(sec render.Section) []string {
	zones := make([]string, len(sec.Items))
	seen := make(map[string]bool, len(sec.Items))
	for i, it := range sec.Items {
		key := it.Action.Target
		if key == "" || seen[key] {
			key = "#" + strconv.Itoa(i)
		}
		seen[key] = true
		zones[i] = itemZone(sec.ID, key)
	}
	return zones
}

func footerZone(section string, i int) string {
	return "footer/" + section + "/" + strconv.Itoa(i)
}

// targets lists the focusable nodes of tree in display order.
func targets(tree render.Tree) []target {
	var out []target

	for _, b := range tree.Header {
		out = append(out, target{zone: buttonZone(b.ID), kind: targetButton, action: b.Action})
	}
	for _, sec := range tree.HeaderSections {
		out = append(out, sectionTargets(sec)...)
	}
	for i, s := range tree.Sliders {
		out = append(out, target{zone: sliderZone(s.ID), kind: targetSlider, slider: i})
	}
	for _, row := range tree.Rows {
		for _, mod := range row.Modules {
			out = append(out, target{zone: moduleZone(mod.ID), kind: targetModule, action: mod.Action})
		}
		for _, sec := range row.Sections {
			out = append(out, sectionTargets(sec)...)
		}
	}

	return out
}

func sectionTargets(sec render.Section) []target {
	var out []target
	if sec.Switch != nil {
		out = append(out, target{zone: switchZone(sec.ID), kind: targetSwitch, action: sec.Switch.Action})
	}
	zones := itemZones(sec)
	for i, it := range sec.Items {
		if it.Action.IsNone() {
			continue
		}
		out = append(out, target{zone: zones[i], kind: targetItem, action: it.Action})
	}
	for i, it := range sec.Footer {
		out = append(out, target{zone: footerZone(sec.ID, i), kind: targetItem, action: it.Action})
	}
	return out
}
