package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noticeTTL is how long a notice stays in the status bar.
const noticeTTL = 4 * time.Second

type clearNoticeMsg struct {
	seq int
}

type statusBar struct {
	message   string
	width     int
	isError   bool
	isSuccess bool
	seq       int
	view      viewID
}

func newStatusBar() statusBar {
	return statusBar{}
}

func (s *statusBar) setMessage(msg string) tea.Cmd {
	s.message = msg
	s.isError = false
	s.isSuccess = false
	return s.expire()
}

func (s *statusBar) setSuccess(msg string) tea.Cmd {
	s.message = msg
	s.isError = false
	s.isSuccess = true
	return s.expire()
}

func (s *statusBar) setError(msg string) tea.Cmd {
	s.message = msg
	s.isError = true
	s.isSuccess = false
	return s.expire()
}

// expire schedules the current notice to be cleared. A newer notice bumps
// seq so an older timer does not wipe it.
func (s *statusBar) expire() tea.Cmd {
	s.seq++
	seq := s.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (s *statusBar) clear(seq int) {
	if seq != s.seq {
		return
	}
	s.message = ""
	s.isError = false
	s.isSuccess = false
}

func (s statusBar) View() string {
	msgStyle := statusBarStyle
	switch {
	case s.isError:
		msgStyle = msgStyle.Foreground(errorColor)
	case s.isSuccess:
		msgStyle = msgStyle.Foreground(successColor)
	}

	left := s.message
	shortcuts := s.shortcuts()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 0 {
		gap = 0
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + mutedTextStyle.Render(shortcuts)
	return msgStyle.Width(s.width).Render(content)
}

func (s statusBar) shortcuts() string {
	switch s.view {
	case viewConfirm:
		return "y:delete  n:cancel"
	case viewProfile:
		return "d:delete account  r:refresh  q:quit"
	default:
		return "tab:next field  enter:log in  ctrl+c:quit"
	}
}
