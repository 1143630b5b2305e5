package session

// ResolveNextScreen decides where the splash hands off to.
func ResolveNextScreen(f Flags) Screen {
	switch {
	case !f.SeenOnboarding:
		return ScreenOnboarding
	case !f.AcceptedTerms:
		return ScreenAcceptTerms
	case !f.LoggedIn:
		return ScreenLogin
	default:
		return ScreenApp
	}
}

// ShouldAutoAdvance reports whether a cold start may skip straight to the app
// once the splash timer elapses.
func ShouldAutoAdvance(f Flags) bool {
	return f.SeenOnboarding && f.AcceptedTerms && f.LoggedIn
}

// Transition is the session reducer. It never performs I/O.
//
// The splash timer and the explicit splash-complete signal both resolve from
// the same flags, so whichever arrives first moves off Splash and the other is
// a no-op that would have produced the same screen.
func Transition(f Flags, current Screen, ev Event) (Screen, Flags) {
	switch ev {
	case EventSplashComplete, EventAutoAdvance:
		if current != ScreenSplash {
			return current, f
		}
		return ResolveNextScreen(f), f
	case EventCompleteOnboarding:
		f.SeenOnboarding = true
		return ScreenAcceptTerms, f
	case EventAcceptTerms:
		f.AcceptedTerms = true
		return ScreenLogin, f
	case EventLogin, EventSignup:
		f.LoggedIn = true
		return ScreenApp, f
	case EventLogout:
		f.LoggedIn = false
		return ScreenLogin, f
	case EventGoToSignup:
		if current == ScreenLogin {
			return ScreenSignup, f
		}
	case EventGoToLogin:
		if current == ScreenSignup {
			return ScreenLogin, f
		}
	}
	return current, f
}
