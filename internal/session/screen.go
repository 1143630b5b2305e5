package session

// Screen identifies the top-level view the session is displaying.
type Screen string

const (
	ScreenSplash      Screen = "splash"
	ScreenOnboarding  Screen = "onboarding"
	ScreenAcceptTerms Screen = "acceptTerms"
	ScreenLogin       Screen = "login"
	ScreenSignup      Screen = "signup"
	ScreenApp         Screen = "app"
)

// Screens lists every top-level screen in flow order.
func Screens() []Screen {
	return []Screen{ScreenSplash, ScreenOnboarding, ScreenAcceptTerms, ScreenLogin, ScreenSignup, ScreenApp}
}

// Event is a completion signal fed into Transition.
type Event string

const (
	EventSplashComplete     Event = "splashComplete"
	EventAutoAdvance        Event = "autoAdvance"
	EventCompleteOnboarding Event = "completeOnboarding"
	EventAcceptTerms        Event = "acceptTerms"
	EventLogin              Event = "login"
	EventSignup             Event = "signup"
	EventLogout             Event = "logout"
	EventGoToSignup         Event = "goToSignup"
	EventGoToLogin          Event = "goToLogin"
)
