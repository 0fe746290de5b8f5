package view

import (
	"cmp"
	"strconv"
	"strings"

	"movie-watchlist/internal/data/entity"
)

// Field names a movie attribute usable as a sort or grouping key.
type Field int

const (
	FieldNone Field = iota
	FieldTitle
	FieldDirector
	FieldReleaseDate
	FieldStatus
	FieldRating
)

var fieldNames = map[Field]string{
	FieldTitle:       "title",
	FieldDirector:    "director",
	FieldReleaseDate: "releaseDate",
	FieldStatus:      "status",
	FieldRating:      "rating",
}

// Fields lists the selectable fields in display order.
var Fields = []Field{FieldTitle, FieldDirector, FieldReleaseDate, FieldStatus, FieldRating}

// ParseField accepts the snapshot field names, case-insensitively, plus
// "release_date". Anything else is FieldNone.
func ParseField(s string) Field {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "release_date" {
		return FieldReleaseDate
	}
	for f, n := range fieldNames {
		if strings.ToLower(n) == name {
			return f
		}
	}
	return FieldNone
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return ""
}

// Value is the grouping key for m, UndefinedKey for FieldNone.
func (f Field) Value(m entity.Movie) string {
	switch f {
	case FieldTitle:
		return m.Title
	case FieldDirector:
		return m.Director
	case FieldReleaseDate:
		return m.ReleaseDate
	case FieldStatus:
		return string(m.Status)
	case FieldRating:
		return strconv.Itoa(m.Rating)
	default:
		return UndefinedKey
	}
}

// Compare orders by field: numerically for rating, lexicographically
// otherwise. FieldNone treats everything as equal.
func (f Field) Compare(a, b entity.Movie) int {
	switch f {
	case FieldNone:
		return 0
	case FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	default:
		return strings.Compare(f.Value(a), f.Value(b))
	}
}
