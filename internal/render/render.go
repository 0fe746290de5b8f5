// Package render turns a view into table markup and owns the display
// surface a render pass commits to.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"movie-watchlist/internal/data/entity"
	"movie-watchlist/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

type FieldOption struct {
	Name  string
	Label string
}

// PageData feeds the full page template.
type PageData struct {
	Title   string
	Filter  string
	Mode    string
	Field   string
	Sort    string
	Flashes []string
	Rows    template.HTML
	Fields  []FieldOption
}

var fieldLabels = map[view.Field]string{
	view.FieldTitle:       "Title",
	view.FieldDirector:    "Director",
	view.FieldReleaseDate: "Release Date",
	view.FieldStatus:      "Status",
	view.FieldRating:      "Rating",
}

// FieldOptions lists the sort/group triggers shown on the page.
func FieldOptions() []FieldOption {
	opts := make([]FieldOption, 0, len(view.Fields))
	for _, f := range view.Fields {
		opts = append(opts, FieldOption{Name: f.String(), Label: fieldLabels[f]})
	}
	return opts
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"statuses": func() []entity.Status { return entity.Statuses },
		"ratings": func() []int {
			r := make([]int, 0, entity.MaxRating-entity.MinRating+1)
			for i := entity.MinRating; i <= entity.MaxRating; i++ {
				r = append(r, i)
			}
			return r
		},
	}
}

func New() (*Renderer, error) {
	tmpl, err := template.New("watchlist").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the table body rows for v. The same view always
// produces the same markup.
func (r *Renderer) Render(v *view.View) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "rows", v); err != nil {
		return "", fmt.Errorf("render rows: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) Page(data PageData) (string, error) {
	if data.Fields == nil {
		data.Fields = FieldOptions()
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
