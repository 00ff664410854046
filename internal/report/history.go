package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sonartools/sonarpdf/internal/sonarqube"
)

// EntryKind distinguishes the two history sources of an issue.
type EntryKind string

const (
	KindComment EntryKind = "comment"
	KindDiff    EntryKind = "diff"
)

// HistoryEntry is one row of an issue's merged history: either a user
// comment or a recorded set of field changes.
type HistoryEntry struct {
	// Timestamp is the zero time when the source record carried no
	// parseable creation time; such entries sort first.
	Timestamp time.Time
	User      string
	Kind      EntryKind
	Comment   string
	Changes   []sonarqube.Diff
}

var titleCaser = cases.Title(language.English)

// MergeHistory merges an issue's comments and changelog into a single list
// sorted ascending by timestamp. Entries with nothing to render (empty
// comment text, diffs whose old and new values are both empty) are dropped.
func MergeHistory(iss sonarqube.Issue) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(iss.Comments)+len(iss.Changelog))

	for _, c := range iss.Comments {
		ts, _ := sonarqube.ParseTime(c.CreatedAt)
		entries = append(entries, HistoryEntry{
			Timestamp: ts,
			User:      c.Login,
			Kind:      KindComment,
			Comment:   c.Markdown,
		})
	}

	for _, ch := range iss.Changelog {
		ts, _ := sonarqube.ParseTime(ch.CreatedAt)
		user := ch.User.Name
		if user == "" {
			user = "System"
		}
		entries = append(entries, HistoryEntry{
			Timestamp: ts,
			User:      user,
			Kind:      KindDiff,
			Changes:   ch.Diffs,
		})
	}

	kept := entries[:0]
	for _, e := range entries {
		if len(e.DetailLines()) > 0 {
			kept = append(kept, e)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})
	return kept
}

// DetailLines renders the entry's content as basic-markup lines (b/i tags
// only) for the history table's change column. An empty result means the
// entry has nothing to show and must be dropped.
func (e HistoryEntry) DetailLines() []string {
	switch e.Kind {
	case KindComment:
		text := strings.TrimSpace(e.Comment)
		if text == "" {
			return nil
		}
		return []string{"<b>Comment:</b> " + EscapeMarkup(text)}
	case KindDiff:
		var lines []string
		for _, d := range e.Changes {
			if d.OldValue == "" && d.NewValue == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("<i>%s</i> changed from '<b>%s</b>' to '<b>%s</b>'",
				titleCaser.String(d.Key), EscapeMarkup(d.OldValue), EscapeMarkup(d.NewValue)))
		}
		return lines
	}
	return nil
}

// DateLabel formats the entry timestamp for the history table, or "N/A"
// when the source record carried none.
func (e HistoryEntry) DateLabel() string {
	if e.Timestamp.IsZero() {
		return "N/A"
	}
	return e.Timestamp.Format("2006-01-02 15:04")
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMarkup escapes the three markup-sensitive characters so that
// user-supplied text survives the basic-HTML rendering pass as literal text.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// AnalysisTime returns the nominal analysis time of the gate evaluation:
// the first condition carrying a parseable lastAnalysisTime. ok is false
// when no condition has one.
func AnalysisTime(gate *sonarqube.GateStatus) (time.Time, bool) {
	if gate == nil {
		return time.Time{}, false
	}
	for _, cond := range gate.Conditions {
		if t, ok := sonarqube.ParseTime(cond.LastAnalysisTime); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
