package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/accountctl/internal/app"
	"github.com/lu-zhengda/accountctl/internal/domain"
)

type viewID int

const (
	viewLogin viewID = iota
	viewProfile
	viewConfirm
)

const deletePrompt = "Delete your account? This cannot be undone."

// AccountService is the subset of app.AccountService the view drives.
type AccountService interface {
	Restore(ctx context.Context) domain.Session
	RefreshProfile(ctx context.Context, token string) (*domain.Profile, error)
	SignIn(ctx context.Context, identifier, password string) (domain.Session, error)
	DeleteAccount(ctx context.Context, token string) error
}

// --- async result messages ---

type profileRefreshedMsg struct {
	profile *domain.Profile
}

type refreshFailedMsg struct {
	err error
}

type signedInMsg struct {
	session domain.Session
}

type signInFailedMsg struct {
	err error
}

type accountDeletedMsg struct{}

type deleteFailedMsg struct {
	err error
}

// --- root model ---

type model struct {
	svc     AccountService
	session domain.Session

	login     loginModel
	confirm   confirmModel
	statusBar statusBar

	submitting bool
	deleting   bool

	width  int
	height int
}

// NewModel restores the persisted session before the first frame, so the
// view opens in the right state without waiting on the network.
func NewModel(svc AccountService) model {
	return model{
		svc:       svc,
		session:   svc.Restore(context.Background()),
		login:     newLogin(),
		statusBar: newStatusBar(),
	}
}

func (m model) Init() tea.Cmd {
	if !m.session.Authenticated() {
		return nil
	}
	return m.refreshCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.login.SetWidth(msg.Width)
		return m, nil

	case clearNoticeMsg:
		m.statusBar.clear(msg.seq)
		return m, nil

	// --- async results ---
	case profileRefreshedMsg:
		if m.session.Authenticated() {
			m.session.SetProfile(msg.profile)
		}
		return m, nil

	case refreshFailedMsg:
		// Keep whatever is on screen. The service already logged it.
		return m, nil

	case signedInMsg:
		m.submitting = false
		m.session = msg.session
		m.login.Reset()
		cmds := []tea.Cmd{m.statusBar.setSuccess(app.NoticeSignedIn)}
		if m.session.Profile == nil {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case signInFailedMsg:
		m.submitting = false
		return m, m.statusBar.setError(app.SignInNotice(msg.err))

	case accountDeletedMsg:
		m.deleting = false
		m.session.Clear()
		m.login.Reset()
		return m, m.statusBar.setSuccess(app.NoticeAccountDeleted)

	case deleteFailedMsg:
		m.deleting = false
		return m, m.statusBar.setError(app.DeleteNotice(msg.err))

	// --- sub-model results ---
	case signInSubmitMsg:
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		return m, m.signInCmd(msg.identifier, msg.password)

	case confirmResultMsg:
		if !msg.confirmed || m.deleting {
			return m, nil
		}
		m.deleting = true
		return m, m.deleteCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.confirm.IsVisible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if !m.session.Authenticated() {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Delete):
		if m.deleting {
			return m, nil
		}
		m.confirm.Open(deletePrompt)
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m, tea.Batch(m.statusBar.setMessage("Refreshing profile..."), m.refreshCmd())
	}
	return m, nil
}

func (m model) currentView() viewID {
	switch {
	case m.confirm.IsVisible():
		return viewConfirm
	case m.session.Authenticated():
		return viewProfile
	default:
		return viewLogin
	}
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.currentView() {
	case viewConfirm:
		body = m.confirm.View()
	case viewProfile:
		body = renderProfile(m.session.Profile, m.deleting)
	default:
		body = m.login.View(m.submitting)
	}

	contentHeight := m.height - 1 // status bar
	if contentHeight < 0 {
		contentHeight = 0
	}
	content := lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, body)

	sb := m.statusBar
	sb.view = m.currentView()
	return lipgloss.JoinVertical(lipgloss.Left, content, sb.View())
}

// --- async commands ---

func (m model) refreshCmd() tea.Cmd {
	svc := m.svc
	token := m.session.Token
	return func() tea.Msg {
		profile, err := svc.RefreshProfile(context.Background(), token)
		if err != nil {
			return refreshFailedMsg{err: err}
		}
		return profileRefreshedMsg{profile: profile}
	}
}

func (m model) signInCmd(identifier, password string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		sess, err := svc.SignIn(context.Background(), identifier, password)
		if err != nil {
			return signInFailedMsg{err: err}
		}
		return signedInMsg{session: sess}
	}
}

func (m model) deleteCmd() tea.Cmd {
	svc := m.svc
	token := m.session.Token
	return func() tea.Msg {
		if err := svc.DeleteAccount(context.Background(), token); err != nil {
			return deleteFailedMsg{err: err}
		}
		return accountDeletedMsg{}
	}
}

// Run starts the Bubble Tea TUI application.
func Run(svc AccountService) error {
	prog := tea.NewProgram(
		NewModel(svc),
		tea.WithAltScreen(),
	)
	_, err := prog.Run()
	return err
}
