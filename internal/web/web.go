package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var ratingEmojis = map[int]string{
	1: "😠",
	2: "😞",
	3: "😐",
	4: "😊",
	5: "😁",
}

// RatingEmoji maps a 1-5 rating to its display symbol. Legacy rows carry no
// rating and render as "No Rating", as do out-of-range values.
func RatingEmoji(rating *int) string {
	if rating == nil {
		return "No Rating"
	}
	if emoji, ok := ratingEmojis[*rating]; ok {
		return emoji
	}
	return "No Rating"
}

// EmojiScale returns the five rating symbols in ascending rating order, used
// to render the radio group on the feedback form.
func EmojiScale() []string {
	scale := make([]string, 0, len(ratingEmojis))
	for rating := 1; rating <= len(ratingEmojis); rating++ {
		scale = append(scale, ratingEmojis[rating])
	}
	return scale
}

// Templates parses the embedded page templates with helper functions attached.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"ratingEmoji": RatingEmoji,
		"ratingIs": func(rating *int, value int) bool {
			return rating != nil && *rating == value
		},
		"fmtTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
