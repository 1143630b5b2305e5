package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
	"github.com/jask/notewise/internal/session"
)

var onboardingSlides = []struct{ title, body string }{
	{"Manual Text Input", "Type or paste your notes directly and let AI organize them for you."},
	{"PDF Upload", "Upload documents and get instant AI-powered summaries and insights."},
	{"Audio & Video", "Record lectures or meetings and get automatic transcriptions."},
	{"Image Recognition", "Capture photos of notes, whiteboards, or documents instantly."},
}

func (a *App) renderSplash() string {
	return a.theme.card.Render(a.theme.title.Render("NoteWise AI") + "\n" +
		a.theme.muted.Render("Smart notes, summarized."))
}

func (a *App) onboardingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Skip):
		return a, a.sessionEvent(a.nav.CompleteOnboarding)
	case key.Matches(m, a.keys.Right):
		if a.slide == len(onboardingSlides)-1 {
			return a, a.sessionEvent(a.nav.CompleteOnboarding)
		}
		a.slide++
	case key.Matches(m, a.keys.Left):
		if a.slide > 0 {
			a.slide--
		}
	}
	return a, nil
}

func (a *App) renderOnboarding() string {
	s := onboardingSlides[a.slide]
	dots := make([]string, len(onboardingSlides))
	for i := range dots {
		dots[i] = a.theme.muted.Render("○")
		if i == a.slide {
			dots[i] = a.theme.accent.Render("●")
		}
	}
	next := "Next"
	if a.slide == len(onboardingSlides)-1 {
		next = "Get Started"
	}
	return a.theme.card.Render(a.theme.title.Render(s.title)+"\n\n"+a.theme.text.Render(s.body)) +
		"\n\n" + strings.Join(dots, " ") + "   " + a.theme.accent.Render(next)
}

func (a *App) termsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Toggle):
		a.termsChecked = !a.termsChecked
	case key.Matches(m, a.keys.Enter):
		if !a.termsChecked {
			a.status = "Please accept the terms to continue"
			return a, nil
		}
		return a, a.sessionEvent(a.nav.AcceptTerms)
	}
	return a, nil
}

func (a *App) renderTerms() string {
	box := "[ ]"
	if a.termsChecked {
		box = a.theme.success.Render("[x]")
	}
	return a.theme.title.Render("Terms & Privacy") + "\n\n" +
		a.theme.text.Render("NoteWise processes the content you capture to build summaries,\nkey points and action items. Your notes stay on this device.") +
		"\n\n" + box + " I agree to the Terms of Service and Privacy Policy"
}

type authForm struct {
	signup bool
	inputs []textinput.Model
	focus  int
	err    string
}

func newAuthForm(signup bool) authForm {
	fields := []string{"Email", "Password"}
	if signup {
		fields = []string{"Full name", "Email", "Password"}
	}
	f := authForm{signup: signup}
	for _, p := range fields {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 120
		if p == "Password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

func (f *authForm) focusCmd() tea.Cmd { return textinput.Blink }

func (f *authForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *authForm) values() (name, email, password string) {
	if f.signup {
		return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
	}
	return "", f.inputs[0].Value(), f.inputs[1].Value()
}

func (a *App) authKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.ToSignup) && a.nav.Current() == session.ScreenLogin:
		prev := a.nav.Current()
		a.nav.GoToSignup()
		return a, a.enterSession(prev)
	case key.Matches(m, a.keys.ToLogin) && a.nav.Current() == session.ScreenSignup:
		prev := a.nav.Current()
		a.nav.GoToLogin()
		return a, a.enterSession(prev)
	case key.Matches(m, a.keys.Enter):
		if a.form.focus < len(a.form.inputs)-1 {
			a.form.move(1)
			return a, nil
		}
		return a, a.submitAuth()
	case key.Matches(m, a.keys.NextFld):
		a.form.move(1)
		return a, nil
	case key.Matches(m, a.keys.PrevFld):
		a.form.move(-1)
		return a, nil
	}
	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(m)
	return a, cmd
}

func (a *App) submitAuth() tea.Cmd {
	name, email, password := a.form.values()
	signup := a.form.signup
	a.form.err = ""
	return func() tea.Msg {
		var p repository.Profile
		var err error
		if signup {
			p, err = a.services.Accounts.Signup(a.ctx, name, email, password)
		} else {
			p, err = a.services.Accounts.Login(a.ctx, email, password)
		}
		return accountMsg{profile: p, err: err}
	}
}

func (a *App) handleAccount(m accountMsg) (tea.Model, tea.Cmd) {
	cur := a.nav.Current()
	if cur != session.ScreenLogin && cur != session.ScreenSignup {
		return a, nil
	}
	switch {
	case errors.Is(m.err, service.ErrMissingField):
		a.form.err = "Please fill in all fields"
		return a, nil
	case errors.Is(m.err, service.ErrInvalidEmail):
		a.form.err = "Please enter a valid email address"
		return a, nil
	case m.err != nil:
		a.form.err = m.err.Error()
		return a, nil
	}
	a.dash.profile = m.profile
	if cur == session.ScreenSignup {
		return a, a.sessionEvent(a.nav.Signup)
	}
	return a, a.sessionEvent(a.nav.Login)
}

func (a *App) renderAuth() string {
	title, alt := "Welcome Back", "No account? ctrl+n to sign up"
	if a.form.signup {
		title, alt = "Create Account", "Have an account? ctrl+l to log in"
	}
	var b strings.Builder
	b.WriteString(a.theme.title.Render(title) + "\n\n")
	for _, in := range a.form.inputs {
		fmt.Fprintf(&b, "%s\n", in.View())
	}
	if a.form.err != "" {
		b.WriteString("\n" + a.theme.danger.Render(a.form.err) + "\n")
	}
	b.WriteString("\n" + a.theme.muted.Render(alt))
	return b.String()
}
