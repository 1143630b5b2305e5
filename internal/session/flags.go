package session

import (
	"context"
	"fmt"
)

// Persisted flag keys.
const (
	KeySeenOnboarding = "hasSeenOnboarding"
	KeyAcceptedTerms  = "hasAcceptedTerms"
	KeyLoggedIn       = "isLoggedIn"
)

const flagTrue = "true"

// Flags gate which screen the splash resolves to.
type Flags struct {
	SeenOnboarding bool
	AcceptedTerms  bool
	LoggedIn       bool
}

// Store is the key-value collaborator that holds the flags across restarts.
// Implementations must provide read-your-writes consistency.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// LoadFlags reads the three flags. Absent keys, and any value other than "true", read as false.
func LoadFlags(ctx context.Context, store Store) (Flags, error) {
	var f Flags
	for _, kv := range []struct {
		key string
		dst *bool
	}{
		{KeySeenOnboarding, &f.SeenOnboarding},
		{KeyAcceptedTerms, &f.AcceptedTerms},
		{KeyLoggedIn, &f.LoggedIn},
	} {
		v, ok, err := store.Get(ctx, kv.key)
		if err != nil {
			return Flags{}, fmt.Errorf("session: read %s: %w", kv.key, err)
		}
		*kv.dst = ok && v == flagTrue
	}
	return f, nil
}

// write is a single store mutation caused by an event.
type write struct {
	key    string
	remove bool
}

// writesFor lists the store mutations an event performs. true is stored as
// "true"; false is only ever expressed as key removal.
func writesFor(ev Event) []write {
	switch ev {
	case EventCompleteOnboarding:
		return []write{{key: KeySeenOnboarding}}
	case EventAcceptTerms:
		return []write{{key: KeyAcceptedTerms}}
	case EventLogin, EventSignup:
		return []write{{key: KeyLoggedIn}}
	case EventLogout:
		return []write{{key: KeyLoggedIn, remove: true}}
	}
	return nil
}

func persist(ctx context.Context, store Store, ev Event) error {
	for _, w := range writesFor(ev) {
		var err error
		if w.remove {
			err = store.Remove(ctx, w.key)
		} else {
			err = store.Set(ctx, w.key, flagTrue)
		}
		if err != nil {
			return fmt.Errorf("session: persist %s: %w", w.key, err)
		}
	}
	return nil
}
