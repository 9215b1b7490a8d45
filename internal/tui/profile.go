package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/accountctl/internal/domain"
)

// renderProfile draws the authenticated card: avatar, name, contact and the
// delete action. A nil profile still renders, with empty fields, because a
// restored token alone is enough to count as logged in.
func renderProfile(p *domain.Profile, deleting bool) string {
	initial := p.Initial()
	if initial == "" {
		initial = "?"
	}

	name := "…"
	if p != nil && p.Name != "" {
		name = p.Name
	}

	rows := []string{
		avatarStyle.Render(initial),
	}
	if url := p.Avatar(); url != "" {
		rows = append(rows, mutedTextStyle.Render(url))
	}
	rows = append(rows,
		"",
		titleStyle.Render(name),
		p.Contact(),
		"",
	)

	if deleting {
		rows = append(rows, disabledButtonStyle.Render("Deleting..."))
	} else {
		rows = append(rows, dangerButtonStyle.Render("d  Delete account"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}
