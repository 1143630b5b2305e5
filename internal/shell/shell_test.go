package shell

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestNewStartsOnDashboard(t *testing.T) {
	t.Parallel()
	s := New()
	require.Equal(t, KindDashboard, s.Screen.Kind)
	require.Equal(t, TabHome, s.Tab)
}

func TestBackFromNoteDetailOnNotesTab(t *testing.T) {
	t.Parallel()
	s := New().ChangeTab(TabNotes)
	s, err := s.ViewNote("note-42")
	require.NoError(t, err)
	require.Equal(t, Screen{Kind: KindNoteDetail, NoteID: "note-42"}, s.Screen)

	back := s.Back()
	require.Equal(t, KindAllNotes, back.Screen.Kind)
	require.Equal(t, TabNotes, back.Tab)
}

func TestBackIsFlattened(t *testing.T) {
	t.Parallel()
	s := New().ChangeTab(TabProfile).OpenSettings()
	first := s.Back()

	s2, err := first.OpenNotifications().ViewNote("x")
	require.NoError(t, err)
	second := s2.Back()

	require.Equal(t, first, second)
	require.Equal(t, KindProfile, second.Screen.Kind)
}

func TestChangeTabUpdatesTabAndScreenTogether(t *testing.T) {
	t.Parallel()
	s := New().CreateNote("audio")
	next := s.ChangeTab(TabProfile)
	require.Equal(t, State{Screen: Screen{Kind: KindProfile}, Tab: TabProfile}, next)
	// original value untouched
	require.Equal(t, KindCreate, s.Screen.Kind)
	require.Equal(t, TabHome, s.Tab)

	require.Equal(t, next, next.ChangeTab("bogus"))
}

func TestViewNoteRequiresID(t *testing.T) {
	t.Parallel()
	s := New()
	got, err := s.ViewNote("  ")
	require.ErrorIs(t, err, ErrEmptyNoteID)
	require.Equal(t, s, got)

	_, err = s.NoteCreated("")
	require.ErrorIs(t, err, ErrEmptyNoteID)
}

func TestCreateNoteCarriesMethodHint(t *testing.T) {
	t.Parallel()
	require.Equal(t, Screen{Kind: KindCreate}, New().CreateNote("").Screen)
	require.Equal(t, Screen{Kind: KindCreate, Method: "pdf"}, New().CreateNote(" pdf ").Screen)
}

func TestShowsTabBar(t *testing.T) {
	t.Parallel()
	visible := map[Kind]bool{
		KindDashboard:     true,
		KindAllNotes:      true,
		KindProfile:       true,
		KindCreate:        false,
		KindNoteDetail:    false,
		KindSettings:      false,
		KindNotifications: false,
	}
	for k := range visible {
		s := State{Screen: Screen{Kind: k, NoteID: "1"}, Tab: TabHome}
		require.Equal(t, visible[k], s.ShowsTabBar(), "kind %s", k)
	}
}

func TestResetReturnsToHome(t *testing.T) {
	t.Parallel()
	s := New().ChangeTab(TabNotes).OpenSettings()
	require.Equal(t, New(), s.Reset())
}

func TestBackProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("back from a note depends only on the tab", prop.ForAll(
		func(id string, tabIdx int) bool {
			if id == "" {
				id = "n"
			}
			tab := Tabs()[tabIdx]
			s, err := New().ChangeTab(tab).ViewNote(id)
			if err != nil {
				return false
			}
			b := s.Back()
			return b.Screen == Anchor(tab) && b.Tab == tab && b.ShowsTabBar()
		},
		gen.AlphaString(),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
