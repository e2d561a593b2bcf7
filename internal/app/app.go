// Package app boots the terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartquiz/internal/screens/play"
)

// Run starts the Bubble Tea program with the play screen.
func Run(deps play.Deps) error {
	p := tea.NewProgram(play.New(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
