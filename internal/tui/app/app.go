// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/resource/catalog"
	"github.com/spoke-dev/spoke/internal/session"
	"github.com/spoke-dev/spoke/internal/status"
	"github.com/spoke-dev/spoke/internal/tui"
	"github.com/spoke-dev/spoke/internal/tui/commands"
	"github.com/spoke-dev/spoke/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	loginView    views.LoginModel
	registerView views.RegisterModel
	homeView     views.HomeModel
	resourceView views.ResourceModel

	// screen is the mounted resource controller, nil outside StateResource.
	screen resource.Screen
}

// New creates the App. The resource deps gain the confirmation
// collaborator here: the resource view's y/n prompt answers it, and a
// delete command is only ever issued after an affirmative answer.
func New(sess *session.Manager, reporter *status.Reporter, deps resource.Deps) *App {
	deps.Confirm = func(int64) bool { return true }
	model := tui.NewModel(sess, reporter, deps)

	return &App{
		model:     model,
		loginView: views.NewLoginModel(model.Width, model.Height),
		homeView:  views.NewHomeModel(menuEntries(deps), model.Width, model.Height),
	}
}

// menuEntries derives the home menu from the resource catalog.
func menuEntries(deps resource.Deps) []views.MenuEntry {
	var entries []views.MenuEntry
	for _, s := range catalog.All(deps) {
		entries = append(entries, views.MenuEntry{Name: s.Name(), Title: s.Title()})
	}
	return entries
}

// Init returns the initial command for the TUI. A persisted token resolves
// the identity immediately at startup.
func (a *App) Init() tea.Cmd {
	if a.model.State == tui.StateHome {
		return tea.Batch(
			a.homeView.Init(),
			a.model.Spinner.Tick,
			commands.FetchIdentityCmd(a.model.Session),
		)
	}
	return a.loginView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a.routeToView(msg)

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		if a.screen != nil && a.screen.Busy() {
			return a, cmd
		}
		return a, nil

	// Session lifecycle ------------------------------------------------

	case tui.SessionExpiredMsg:
		// Message was set and state cleared by the session manager;
		// navigation is the last step of the 401 rule.
		a.toLogin()
		return a, a.loginView.Init()

	case tui.LoggedOutMsg:
		a.toLogin()
		return a, a.loginView.Init()

	case tui.LoginResultMsg:
		if msg.Err != nil {
			return a, nil
		}
		a.toHome()
		return a, tea.Batch(
			a.homeView.Init(),
			commands.FetchIdentityCmd(a.model.Session),
		)

	case tui.RegisterResultMsg:
		// Stay on the registration view; the status line reports the
		// outcome either way.
		return a, nil

	case tui.IdentityMsg:
		if msg.Err != nil && !a.model.Session.Authenticated() {
			// The identity fetch hit a 401 and ended the session.
			a.toLogin()
			return a, a.loginView.Init()
		}
		a.homeView.SetIdentity(msg.Identity)
		return a, nil

	// View intents -----------------------------------------------------

	case views.SubmitLoginMsg:
		return a, commands.LoginCmd(a.model.Session, msg.Username, msg.Password)

	case views.GoRegisterMsg:
		a.model.State = tui.StateRegister
		a.registerView = views.NewRegisterModel(a.model.Width, a.model.Height)
		return a, a.registerView.Init()

	case views.GoLoginMsg:
		a.toLogin()
		return a, a.loginView.Init()

	case views.SubmitRegisterMsg:
		return a, commands.RegisterCmd(a.model.Session,
			msg.Username, msg.Email, msg.Password, msg.FirstName, msg.LastName, msg.Role)

	case views.RequestLogoutMsg:
		return a, commands.LogoutCmd(a.model.Session)

	case views.OpenResourceMsg:
		screen, err := catalog.Lookup(msg.Name, a.model.Deps)
		if err != nil {
			return a, nil
		}
		a.screen = screen
		a.model.Gen++
		a.model.State = tui.StateResource
		a.resourceView = views.NewResourceModel(screen, a.model.Width, a.model.Height)
		return a, tea.Batch(
			a.resourceView.Init(),
			a.model.Spinner.Tick,
			commands.ListCmd(screen, a.model.Session, a.model.Gen),
		)

	case views.GoHomeMsg:
		// Unmounting discards the screen's collection and form buffer;
		// any in-flight response for it is dropped by the gen check.
		a.screen = nil
		a.model.Gen++
		a.toHome()
		return a, a.homeView.Init()

	case views.RefreshMsg:
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.ListCmd(a.screen, a.model.Session, a.model.Gen),
		)

	case views.SubmitFormMsg:
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.SubmitCmd(a.screen, a.model.Session, a.model.Gen),
		)

	case views.DeleteConfirmedMsg:
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.RemoveCmd(a.screen, a.model.Session, a.model.Gen, msg.Index),
		)

	// Command results --------------------------------------------------

	case tui.ListDoneMsg:
		if msg.Gen != a.model.Gen || a.screen == nil {
			return a, nil // stale response from an unmounted screen
		}
		a.resourceView.AfterListChange()
		return a, nil

	case tui.SubmitDoneMsg:
		if msg.Gen != a.model.Gen || a.screen == nil {
			return a, nil
		}
		a.resourceView.AfterSubmit(msg.Err)
		return a, nil

	case tui.RemoveDoneMsg:
		if msg.Gen != a.model.Gen || a.screen == nil {
			return a, nil
		}
		a.resourceView.AfterListChange()
		return a, nil
	}

	return a.routeToView(msg)
}

// routeToView forwards a message to the active view model.
func (a *App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.StateRegister:
		a.registerView, cmd = a.registerView.Update(msg)
	case tui.StateHome:
		a.homeView, cmd = a.homeView.Update(msg)
	case tui.StateResource:
		a.resourceView, cmd = a.resourceView.Update(msg)
	}
	return a, cmd
}

// View renders the current application state with the shared status line.
func (a *App) View() string {
	var content string
	switch a.model.State {
	case tui.StateLogin:
		content = a.loginView.View()
	case tui.StateRegister:
		content = a.registerView.View()
	case tui.StateHome:
		content = a.homeView.View()
	case tui.StateResource:
		content = a.resourceView.View()
	}

	if line := a.statusLine(); line != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, line)
	}

	return lipgloss.Place(a.model.Width, a.model.Height, lipgloss.Center, lipgloss.Center, content)
}

// statusLine renders the shared status slot, plus the spinner while the
// mounted controller is busy.
func (a *App) statusLine() string {
	var parts []string
	if a.screen != nil && a.screen.Busy() {
		parts = append(parts, a.model.Spinner.View())
	}

	s := a.model.Status.Current()
	switch s.Kind {
	case status.Success:
		parts = append(parts, tui.SuccessStyle.Render(s.Text))
	case status.Error:
		parts = append(parts, tui.ErrorStyle.Render(s.Text))
	}
	if a.model.CtrlCPending {
		parts = append(parts, tui.DimStyle.Render("Press Ctrl+C again to exit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

// toLogin resets to the anonymous view, discarding any mounted screen.
func (a *App) toLogin() {
	a.screen = nil
	a.model.Gen++
	a.model.State = tui.StateLogin
	a.homeView.SetIdentity(nil)
	a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
}

// toHome switches to the authenticated home view.
func (a *App) toHome() {
	a.model.State = tui.StateHome
}
