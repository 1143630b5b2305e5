package session

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genFlags() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.Bool(), gen.Bool()).Map(func(v []interface{}) Flags {
		return Flags{SeenOnboarding: v[0].(bool), AcceptedTerms: v[1].(bool), LoggedIn: v[2].(bool)}
	})
}

func genScreen() gopter.Gen {
	var screens []interface{}
	for _, s := range Screens() {
		screens = append(screens, s)
	}
	return gen.OneConstOf(screens...)
}

func TestTransitionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("completeOnboarding always lands on AcceptTerms with the flag set", prop.ForAll(
		func(f Flags, s Screen) bool {
			next, nf := Transition(f, s, EventCompleteOnboarding)
			return next == ScreenAcceptTerms && nf.SeenOnboarding &&
				nf.AcceptedTerms == f.AcceptedTerms && nf.LoggedIn == f.LoggedIn
		},
		genFlags(), genScreen(),
	))

	properties.Property("logout never clears onboarding or terms", prop.ForAll(
		func(f Flags, s Screen) bool {
			next, nf := Transition(f, s, EventLogout)
			return next == ScreenLogin && !nf.LoggedIn &&
				nf.SeenOnboarding == f.SeenOnboarding && nf.AcceptedTerms == f.AcceptedTerms
		},
		genFlags(), genScreen(),
	))

	properties.Property("both splash signals agree", prop.ForAll(
		func(f Flags) bool {
			a, _ := Transition(f, ScreenSplash, EventAutoAdvance)
			b, _ := Transition(f, ScreenSplash, EventSplashComplete)
			a2, _ := Transition(f, a, EventSplashComplete)
			return a == b && a2 == a && a == ResolveNextScreen(f)
		},
		genFlags(),
	))

	properties.Property("login and signup are indistinguishable", prop.ForAll(
		func(f Flags, s Screen) bool {
			a, fa := Transition(f, s, EventLogin)
			b, fb := Transition(f, s, EventSignup)
			return a == b && fa == fb && a == ScreenApp
		},
		genFlags(), genScreen(),
	))

	properties.TestingRun(t)
}
