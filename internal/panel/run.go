package panel

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the panel on the alternate screen and blocks until the
// session is dismissed or ctx is cancelled.
func Run(ctx context.Context, deps Deps, opts Options) error {
	m := New(ctx, deps, opts)
	defer m.cancel()
	defer m.zones.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			m.overlay.Dismiss()
			return nil
		}
		return fmt.Errorf("panel: %w", err)
	}
	return nil
}
