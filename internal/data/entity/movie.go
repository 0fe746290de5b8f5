package entity

import "strings"

type Status string

const (
	StatusToWatch   Status = "to-watch"
	StatusWatching  Status = "watching"
	StatusCompleted Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusToWatch, StatusWatching, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusToWatch, StatusWatching, StatusCompleted:
		return true
	}
	return false
}

// Label is the human-readable form shown in selectors.
func (s Status) Label() string {
	switch s {
	case StatusToWatch:
		return "To Watch"
	case StatusWatching:
		return "Watching"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

const (
	MinRating = 0
	MaxRating = 5
)

// Movie is one tracked watch-list entry. The JSON field names match the
// persisted snapshot format.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseDate string `json:"releaseDate"`
	Status      Status `json:"status"`
	Rating      int    `json:"rating"`
}

func (m Movie) Completed() bool {
	return m.Status == StatusCompleted
}

// Matches reports whether title or director contains filter, ignoring case.
func (m Movie) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(m.Title), needle) ||
		strings.Contains(strings.ToLower(m.Director), needle)
}
