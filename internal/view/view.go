// Package view turns the stored movie list into the ordered rows of one
// render pass: filter, sort, group, then the in-group number ordering.
// Covers are resolved afterwards by the caller.
package view

import (
	"cmp"
	"math"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"movie-watchlist/internal/data/entity"
)

type Mode int

const (
	ModeList Mode = iota
	ModeGroup
)

func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "group") {
		return ModeGroup
	}
	return ModeList
}

func (m Mode) String() string {
	if m == ModeGroup {
		return "group"
	}
	return "list"
}

// SeriesGroup collects every Harry Potter title whatever the grouping field.
const SeriesGroup = "Harry Potter Series"

const seriesMarker = "harry potter"

// UndefinedKey is the bucket for movies grouped by an unknown field.
const UndefinedKey = "undefined"

type Options struct {
	Filter  string
	Mode    Mode
	GroupBy Field
	SortBy  Field
}

type Row struct {
	Movie entity.Movie
	Cover string
}

// Group is a run of rows under one key. In list mode there is a single
// group with an empty key and no header.
type Group struct {
	Key     string
	Header  bool
	Average string
	Rows    []Row
}

type View struct {
	Mode   Mode
	Groups []Group
}

// Len is the number of rows across all groups.
func (v *View) Len() int {
	n := 0
	for _, g := range v.Groups {
		n += len(g.Rows)
	}
	return n
}

// Rows returns pointers to every row in display order.
func (v *View) Rows() []*Row {
	rows := make([]*Row, 0, v.Len())
	for gi := range v.Groups {
		for ri := range v.Groups[gi].Rows {
			rows = append(rows, &v.Groups[gi].Rows[ri])
		}
	}
	return rows
}

// Build derives the view for movies without touching the input order.
func Build(movies []entity.Movie, opts Options) *View {
	filtered := Filter(movies, opts.Filter)
	Sort(filtered, opts.SortBy)

	v := &View{Mode: opts.Mode}
	if len(filtered) == 0 {
		return v
	}

	if opts.Mode != ModeGroup {
		v.Groups = []Group{{Rows: toRows(filtered)}}
		return v
	}

	for _, bucket := range partition(filtered, opts.GroupBy) {
		SortByNumber(bucket.movies)
		v.Groups = append(v.Groups, Group{
			Key:     bucket.key,
			Header:  true,
			Average: AverageRating(bucket.movies),
			Rows:    toRows(bucket.movies),
		})
	}

	return v
}

// Filter keeps movies whose title or director contains text, ignoring case.
// The result is a fresh slice.
func Filter(movies []entity.Movie, text string) []entity.Movie {
	out := make([]entity.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Matches(text) {
			out = append(out, m)
		}
	}
	return out
}

// Sort orders movies ascending by field. FieldNone keeps the order. Ties
// keep their relative order.
func Sort(movies []entity.Movie, field Field) {
	if field == FieldNone {
		return
	}
	slices.SortStableFunc(movies, field.Compare)
}

// GroupKey returns the bucket a movie belongs to when grouping by field.
func GroupKey(m entity.Movie, field Field) string {
	if strings.Contains(strings.ToLower(m.Title), seriesMarker) {
		return SeriesGroup
	}
	return field.Value(m)
}

type bucket struct {
	key    string
	movies []entity.Movie
}

// partition keeps buckets in order of first appearance.
func partition(movies []entity.Movie, field Field) []*bucket {
	var buckets []*bucket
	index := map[string]*bucket{}
	for _, m := range movies {
		key := GroupKey(m, field)
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.movies = append(b.movies, m)
	}
	return buckets
}

var firstNumber = regexp.MustCompile(`\d+`)

// TitleNumber is the first run of digits in title, or +Inf when there is none.
func TitleNumber(title string) float64 {
	match := firstNumber.FindString(title)
	if match == "" {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.Inf(1)
	}
	return n
}

// SortByNumber orders movies by TitleNumber, stable.
func SortByNumber(movies []entity.Movie) {
	slices.SortStableFunc(movies, func(a, b entity.Movie) int {
		return cmp.Compare(TitleNumber(a.Title), TitleNumber(b.Title))
	})
}

// AverageRating is sum/count of ratings rounded to two decimals. It
// returns "0.00" for an empty slice.
func AverageRating(movies []entity.Movie) string {
	if len(movies) == 0 {
		return "0.00"
	}
	sum := int64(0)
	for _, m := range movies {
		sum += int64(m.Rating)
	}
	return new(big.Rat).SetFrac64(sum, int64(len(movies))).FloatString(2)
}

func toRows(movies []entity.Movie) []Row {
	rows := make([]Row, len(movies))
	for i, m := range movies {
		rows[i] = Row{Movie: m}
	}
	return rows
}
