package panel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/overlay"
	"github.com/muurk/quickpanel/internal/render"
)

const (
	minPanelWidth = 24
	ellipsis      = "…"
)

var colorValue = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// View renders the panel at its anchored position.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	box, bounds := m.layout()
	return m.zones.Scan(place(box, bounds))
}

// layout renders the panel box and reports where it sits on screen.
func (m Model) layout() (string, overlay.Rect) {
	box := m.renderPanel(m.panelWidth())
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x, y := anchorOrigin(m.opts.Anchor, m.width, m.height, w, h, m.opts.Margin)
	return box, overlay.Rect{X: x, Y: y, Width: w, Height: h}
}

func (m Model) panelWidth() int {
	w := m.opts.Width
	if m.width > 0 {
		w = min(w, m.width-2*m.opts.Margin)
	}
	return max(w, minPanelWidth)
}

// anchorOrigin returns the top-left cell of a w x h box pinned to anchor.
func anchorOrigin(anchor string, termW, termH, w, h, margin int) (int, int) {
	x, y := margin, margin
	if termW > 0 && (anchor == config.AnchorTopRight || anchor == config.AnchorBottomRight) {
		x = termW - margin - w
	}
	if termH > 0 && (anchor == config.AnchorBottomLeft || anchor == config.AnchorBottomRight) {
		y = termH - margin - h
	}
	return max(x, 0), max(y, 0)
}

// place offsets box to r's origin.
func place(box string, r overlay.Rect) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", r.Y))
	pad := strings.Repeat(" ", r.X)
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func (m Model) isFocused(zoneID string) bool {
	t, ok := m.focused()
	return ok && t.zone == zoneID
}

func (m Model) renderPanel(width int) string {
	// Border and horizontal padding take two cells each side.
	inner := width - 4

	var parts []string
	parts = append(parts, m.renderHeader(inner))

	if !m.loaded {
		parts = append(parts, SubtleStyle.Render("Loading…"))
	} else {
		for _, sec := range m.tree.HeaderSections {
			parts = append(parts, m.renderSection(sec, inner))
		}
		for _, s := range m.tree.Sliders {
			parts = append(parts, m.renderSlider(s, inner))
		}
		for _, row := range m.tree.Rows {
			parts = append(parts, m.renderRow(row, inner))
			for _, sec := range row.Sections {
				parts = append(parts, m.renderSection(sec, inner))
			}
		}
	}

	h := m.help
	h.Width = inner
	parts = append(parts, HelpStyle.Render(h.View(m.keys)))

	return PanelStyle.Width(width - 2).Render(strings.Join(parts, "\n"))
}

func (m Model) renderHeader(width int) string {
	status := StatusStyle.Render(m.tree.Status)
	if !m.loaded {
		status = ""
	}
	if m.refreshing {
		status = strings.TrimSpace(status + " " + m.spinner.View())
	}

	var buttons []string
	for _, b := range m.tree.Header {
		style := ButtonStyle
		switch {
		case m.isFocused(buttonZone(b.ID)):
			style = FocusedButtonStyle
		case b.Expanded:
			style = ExpandedButtonStyle
		}
		buttons = append(buttons, m.mark(buttonZone(b.ID), style.Render(b.Icon)))
	}
	right := strings.Join(buttons, "")

	gap := max(width-lipgloss.Width(status)-lipgloss.Width(right), 1)
	return status + strings.Repeat(" ", gap) + right
}

func (m Model) renderSlider(s render.Slider, width int) string {
	icon := s.Icon
	if m.isFocused(sliderZone(s.ID)) {
		icon = FocusedItemStyle.Render(icon)
	}
	value := fmt.Sprintf("%4d%%", s.Percent)

	bar := m.bar
	bar.Width = max(width-lipgloss.Width(icon)-lipgloss.Width(value)-2, 4)

	return icon + " " + m.mark(sliderZone(s.ID), bar.ViewAs(float64(s.Percent)/100)) + " " + value
}

func (m Model) renderRow(row render.Row, width int) string {
	if len(row.Modules) == 1 {
		return m.renderTile(row.Modules[0], width)
	}

	left := (width - 1) / 2
	right := width - left - 1
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTile(row.Modules[0], left),
		" ",
		m.renderTile(row.Modules[1], right),
	)
}

func (m Model) renderTile(mod render.Module, width int) string {
	style, titleStyle := TileStyle, TitleStyle
	if mod.Active {
		style, titleStyle = ActiveTileStyle, ActiveTitleStyle
	}
	if m.isFocused(moduleZone(mod.ID)) {
		style = style.BorderForeground(HighlightColor)
	}

	// Border and padding
	inner := max(width-4, 1)

	chevron := ""
	if mod.Expandable {
		chevron = " ▸"
		if mod.Expanded {
			chevron = " ▾"
		}
	}
	title := ansi.Truncate(mod.Icon+" "+mod.Title, inner-lipgloss.Width(chevron), ellipsis)
	subtitle := ansi.Truncate(mod.Subtitle, inner, ellipsis)

	content := titleStyle.Render(title) + chevron + "\n" + SubtleStyle.Render(subtitle)
	return m.mark(moduleZone(mod.ID), style.Width(width-2).Render(content))
}

func (m Model) renderSection(sec render.Section, width int) string {
	// Left border and padding
	inner := width - 2

	lines := []string{TitleStyle.Render(sec.Title)}

	if sw := sec.Switch; sw != nil {
		state, style := "off", SwitchOffStyle
		if sw.On {
			state, style = "on", SwitchOnStyle
		}
		label := ansi.Truncate(sw.Label, inner-len(state)-1, ellipsis)
		if m.isFocused(switchZone(sec.ID)) {
			label = FocusedItemStyle.Render(label)
		}
		gap := max(inner-lipgloss.Width(label)-len(state), 1)
		lines = append(lines, m.mark(switchZone(sec.ID), label+strings.Repeat(" ", gap)+style.Render(state)))
	}

	if sec.Value != "" {
		value := sec.Value
		if colorValue.MatchString(value) {
			value = lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("    ") + " " + value
		}
		lines = append(lines, value)
	}

	zones := itemZones(sec)
	for i, it := range sec.Items {
		lines = append(lines, m.renderItem(zones[i], it, inner))
	}
	if sec.Empty != "" {
		lines = append(lines, SubtleStyle.Render(sec.Empty))
	}

	if len(sec.Footer) > 0 {
		var footer []string
		for i, it := range sec.Footer {
			z := footerZone(sec.ID, i)
			label := it.Icon + " " + it.Label
			if m.isFocused(z) {
				label = FocusedItemStyle.Render(label)
			} else {
				label = VerbStyle.Render(label)
			}
			footer = append(footer, m.mark(z, label))
		}
		lines = append(lines, strings.Join(footer, "  "))
	}

	return SectionStyle.Width(width - 1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderItem(zoneID string, it render.Item, width int) string {
	right := it.Detail
	if it.Verb != "" {
		right = strings.TrimSpace(right + " " + VerbStyle.Render(it.Verb))
	}

	label := it.Label
	if it.Icon != "" {
		label = it.Icon + " " + label
	}
	label = ansi.Truncate(label, max(width-lipgloss.Width(right)-1, 1), ellipsis)

	switch {
	case m.isFocused(zoneID):
		label = FocusedItemStyle.Render(label)
	case it.Connected:
		label = ConnectedItemStyle.Render(label)
	default:
		label = ItemStyle.Render(label)
	}

	gap := max(width-lipgloss.Width(label)-lipgloss.Width(right), 1)
	line := label + strings.Repeat(" ", gap) + right
	if it.Action.IsNone() {
		return line
	}
	return m.mark(zoneID, line)
}
