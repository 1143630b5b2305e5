package session

import (
	"context"
	"io"
	"log/slog"
)

// Navigator owns the current top-level screen and keeps the persisted flags
// in step with it.
type Navigator struct {
	store    Store
	log      *slog.Logger
	current  Screen
	flags    Flags
	onChange []func(from, to Screen)
}

type Option func(*Navigator)

func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// New builds a navigator sitting on Splash. Call Start before feeding events.
func New(store Store, opts ...Option) *Navigator {
	n := &Navigator{
		store:   store,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		current: ScreenSplash,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// OnChange registers a hook invoked after every screen change.
func (n *Navigator) OnChange(fn func(from, to Screen)) {
	n.onChange = append(n.onChange, fn)
}

func (n *Navigator) Current() Screen { return n.current }

func (n *Navigator) Flags() Flags { return n.flags }

// Start resets to Splash for a cold start and reports whether the cosmetic
// auto-advance timer should be scheduled.
func (n *Navigator) Start(ctx context.Context) (bool, error) {
	f, err := LoadFlags(ctx, n.store)
	if err != nil {
		return false, err
	}
	n.flags = f
	n.set(ScreenSplash)
	return ShouldAutoAdvance(f), nil
}

// SplashComplete performs the authoritative hand-off from the splash screen.
func (n *Navigator) SplashComplete(ctx context.Context) error {
	return n.resolveFromSplash(ctx, EventSplashComplete)
}

// AutoAdvance is the timer-driven twin of SplashComplete.
func (n *Navigator) AutoAdvance(ctx context.Context) error {
	return n.resolveFromSplash(ctx, EventAutoAdvance)
}

func (n *Navigator) resolveFromSplash(ctx context.Context, ev Event) error {
	if n.current != ScreenSplash {
		n.log.Debug("splash event ignored", "event", ev, "screen", n.current)
		return nil
	}
	f, err := LoadFlags(ctx, n.store)
	if err != nil {
		return err
	}
	n.flags = f
	return n.dispatch(ctx, ev)
}

func (n *Navigator) CompleteOnboarding(ctx context.Context) error {
	return n.dispatch(ctx, EventCompleteOnboarding)
}

func (n *Navigator) AcceptTerms(ctx context.Context) error {
	return n.dispatch(ctx, EventAcceptTerms)
}

func (n *Navigator) Login(ctx context.Context) error {
	return n.dispatch(ctx, EventLogin)
}

// Signup behaves exactly like Login once invoked.
func (n *Navigator) Signup(ctx context.Context) error {
	return n.dispatch(ctx, EventSignup)
}

// Logout clears isLoggedIn only; onboarding and terms stay accepted.
func (n *Navigator) Logout(ctx context.Context) error {
	return n.dispatch(ctx, EventLogout)
}

func (n *Navigator) GoToSignup() {
	_ = n.dispatch(context.Background(), EventGoToSignup)
}

func (n *Navigator) GoToLogin() {
	_ = n.dispatch(context.Background(), EventGoToLogin)
}

// dispatch persists the event's flag writes and only then moves the screen,
// so a failed write leaves the navigator where it was.
func (n *Navigator) dispatch(ctx context.Context, ev Event) error {
	next, flags := Transition(n.flags, n.current, ev)
	if err := persist(ctx, n.store, ev); err != nil {
		n.log.Error("flag write failed", "event", ev, "err", err)
		return err
	}
	n.flags = flags
	n.set(next)
	return nil
}

func (n *Navigator) set(next Screen) {
	prev := n.current
	n.current = next
	if prev == next {
		return
	}
	n.log.Debug("screen change", "from", prev, "to", next)
	for _, fn := range n.onChange {
		fn(prev, next)
	}
}
