// Package textfmt holds the small relative-time and text helpers used when
// rendering portal lists and chat views.
package textfmt

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	shortDate = "Jan 2"
	clock     = "3:04 PM"
)

// DistanceToNow renders how long ago t was: "Just now", "5m", "3h", "2d",
// "1w", and the month and day once four weeks have passed.
func DistanceToNow(t, now time.Time) string {
	secs := int64(now.Sub(t) / time.Second)
	if secs < 60 {
		return "Just now"
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}
	if weeks := days / 7; weeks < 4 {
		return fmt.Sprintf("%dw", weeks)
	}
	return t.In(now.Location()).Format(shortDate)
}

// MessageTime renders a chat timestamp relative to the calendar day of now.
func MessageTime(t, now time.Time) string {
	t = t.In(now.Location())
	hm := t.Format(clock)

	switch {
	case sameDay(t, now):
		return hm
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday " + hm
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon") + " " + hm
	default:
		return t.Format(shortDate + ", " + clock)
	}
}

// LastSeen renders presence: "Active now", "Active 5m ago", "Active 3h ago"
// or "Last seen Jan 2".
func LastSeen(t, now time.Time) string {
	mins := int64(now.Sub(t) / time.Minute)
	switch {
	case mins < 1:
		return "Active now"
	case mins < 60:
		return fmt.Sprintf("Active %dm ago", mins)
	case mins < 24*60:
		return fmt.Sprintf("Active %dh ago", mins/60)
	default:
		return "Last seen " + t.In(now.Location()).Format(shortDate)
	}
}

// Truncate cuts s to at most max runes, ending in "..." when shortened.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		if max <= 0 {
			return ""
		}
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// Initials returns up to two upper-cased first letters of the words in name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteString(strings.ToUpper(string(r)))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
