package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/notewise/internal/database/repository"
)

const samplesSeededKey = "samples_seeded"

// SampleNoteID is the stable ID of a sample note, derived from its title.
func SampleNoteID(title string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("note:"+title)).String()
}

// SeedDefaults loads the sample notes and notifications into a new database.
// It runs once per database; clearing data afterwards does not bring them back.
func SeedDefaults(ctx context.Context, db *sql.DB, now time.Time) error {
	var done string
	err := db.QueryRowContext(ctx, `SELECT value FROM app_meta WHERE key = ?`, samplesSeededKey).Scan(&done)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("seed: read marker: %w", err)
	}

	notes := repository.NewNoteRepo(db)
	for _, n := range sampleNotes(now) {
		if err := notes.Insert(ctx, n); err != nil {
			return fmt.Errorf("seed note %q: %w", n.Title, err)
		}
	}
	alerts := repository.NewNotificationRepo(db)
	for _, n := range sampleNotifications(now) {
		if err := alerts.Insert(ctx, n); err != nil {
			return fmt.Errorf("seed notification %q: %w", n.Title, err)
		}
	}
	_, err = db.ExecContext(ctx, `INSERT INTO app_meta(key, value) VALUES(?, ?)`, samplesSeededKey, now.UTC().Format(time.RFC3339))
	return err
}

func sampleNotes(now time.Time) []repository.Note {
	day := 24 * time.Hour
	mk := func(title, preview string, typ repository.NoteType, age time.Duration, fav bool) repository.Note {
		return repository.Note{
			ID:        SampleNoteID(title),
			Title:     title,
			Preview:   preview,
			Type:      typ,
			Summary:   preview,
			Favorite:  fav,
			CreatedAt: now.Add(-age),
		}
	}

	meeting := mk("Team Meeting Notes", "Discussed Q4 goals and project timelines...", repository.NoteAudio, 2*time.Hour, true)
	meeting.Summary = "Comprehensive discussion about Q4 goals, project timelines, and resource allocation. Team aligned on priorities and next steps."
	meeting.KeyPoints = []string{
		"Q4 revenue target increased by 15%",
		"New product launch scheduled for November",
		"Marketing campaign to start in 2 weeks",
		"Hiring 3 new team members by end of month",
		"Weekly sync meetings moved to Thursdays",
	}
	meeting.ActionItems = []repository.ActionItem{
		{Text: "Send proposal to client by Friday"},
		{Text: "Schedule follow-up meeting with design team"},
		{Text: "Review budget allocation", Done: true},
	}
	meeting.Tags = []string{"Meeting", "Q4 Planning", "Product Launch", "Team"}
	meeting.Transcript = "[00:00] John: Good morning everyone, thanks for joining today's meeting. Let's start with a quick review of our Q4 goals.\n" +
		"[02:15] Sarah: Based on our current trajectory, I think we can push our revenue target up by 15%.\n" +
		"[05:30] Mike: That sounds ambitious but achievable. What's our timeline for the product launch?\n" +
		"[07:45] Sarah: We're targeting November 15th.\n" +
		"[12:00] Emma: We're planning to start the campaign in 2 weeks.\n" +
		"[15:30] John: I'd like to hire 3 new team members by the end of the month.\n" +
		"[20:15] John: Let's shift our weekly sync meetings to Thursdays.\n" +
		"[22:30] All: Sounds good!"

	research := mk("Research Paper Summary", "Key findings from the AI research paper...", repository.NotePDF, day, false)
	research.Tags = []string{"Research", "AI"}
	research.KeyPoints = []string{"Transformer variants dominate the benchmarks", "Data quality matters more than model size"}

	whiteboard := mk("Whiteboard Ideas", "Brainstorming session captured from whiteboard...", repository.NoteImage, 3*day, true)
	whiteboard.Tags = []string{"Brainstorm"}

	kickoff := mk("Project Kickoff Notes", "Initial planning and requirements gathering...", repository.NoteText, 2*day, false)
	kickoff.ActionItems = []repository.ActionItem{{Text: "Draft requirements document"}, {Text: "Book kickoff retro"}}
	kickoff.Tags = []string{"Planning"}

	return []repository.Note{
		meeting,
		research,
		whiteboard,
		kickoff,
		mk("Interview Recording", "Customer interview about product features...", repository.NoteAudio, 7*day, false),
		mk("Contract Document", "Legal contract review and key terms...", repository.NotePDF, 14*day, true),
		mk("Design Mockups", "UI/UX design screenshots and annotations...", repository.NoteImage, 15*day, false),
		mk("Daily Standup", "Quick team updates and blockers...", repository.NoteText, 21*day, false),
	}
}

func sampleNotifications(now time.Time) []repository.Notification {
	mk := func(id, kind, title, msg string, age time.Duration, read bool) repository.Notification {
		return repository.Notification{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("notification:"+id)).String(),
			Kind:      kind,
			Title:     title,
			Message:   msg,
			Read:      read,
			CreatedAt: now.Add(-age),
		}
	}
	return []repository.Notification{
		mk("1", "success", "Note Generated Successfully", "Your audio recording has been transcribed and summarized.", 5*time.Minute, false),
		mk("2", "info", "AI Tip: Organize Your Notes", "Use tags to make your notes easier to find and categorize.", time.Hour, false),
		mk("3", "achievement", "12 Day Streak!", "You're on fire! Keep up the great note-taking habit.", 2*time.Hour, true),
		mk("4", "reminder", "Action Item Reminder", "Don't forget: Send proposal to client by Friday", 3*time.Hour, true),
		mk("5", "update", "New Feature Available", "Try our new collaborative notes feature!", 24*time.Hour, true),
		mk("6", "message", "Welcome to NoteWise AI", "Thanks for joining! Check out our quick start guide.", 48*time.Hour, true),
	}
}
