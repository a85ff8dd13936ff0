package tui

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// botRenderer turns bot markup into terminal output. Bot text is HTML-ish
// (shopping links arrive as anchor tags), so it is converted to markdown
// and then rendered by glamour.
type botRenderer struct {
	converter *converter.Converter
	sanitizer *bluemonday.Policy
	style     string
	glamour   *glamour.TermRenderer
}

func newBotRenderer(style string, sanitize bool) *botRenderer {
	r := &botRenderer{
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		style: style,
	}
	if sanitize {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
		r.sanitizer = policy
	}
	return r
}

// resize rebuilds the glamour renderer for a new wrap width.
func (r *botRenderer) resize(width int) error {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == "" || r.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	r.glamour = tr
	return nil
}

// markdown converts bot text to markdown, sanitizing first when enabled.
func (r *botRenderer) markdown(text string) (string, error) {
	if r.sanitizer != nil {
		text = r.sanitizer.Sanitize(text)
	}
	return r.converter.ConvertString(text)
}

// render returns the terminal form of text, falling back to the raw text.
func (r *botRenderer) render(text string) string {
	md, err := r.markdown(text)
	if err != nil {
		return text
	}
	if r.glamour == nil {
		return md
	}
	out, err := r.glamour.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
