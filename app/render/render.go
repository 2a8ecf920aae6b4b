// Package render formats dictionary entries as styled terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rbhz/jisho-cli/app/clients/jisho"
)

// Block is the rendered text of a single entry and the number of lines it takes
type Block struct {
	Text  string
	Lines int
}

type styles struct {
	word         lipgloss.Style
	common       lipgloss.Style
	level        lipgloss.Style
	partOfSpeech lipgloss.Style
	tag          lipgloss.Style
	heading      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		word:         r.NewStyle().Bold(true),
		common:       r.NewStyle().Foreground(lipgloss.Color("10")),
		level:        r.NewStyle().Foreground(lipgloss.Color("12")),
		partOfSpeech: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		tag:          r.NewStyle().Foreground(lipgloss.Color("11")),
		heading:      r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer renders entries. Styling is fixed at construction and never re-detected,
// so text rendered for a terminal keeps its colors when handed to a pager.
type Renderer struct {
	styles styles
}

// New creates Renderer for w. ANSI colors are emitted only when color is true.
func New(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{styles: newStyles(r)}
}

// Dim renders auxiliary messages such as "no results"
func (r *Renderer) Dim(s string) string {
	return r.styles.heading.Render(s)
}

// Render formats an entry. It returns false when the entry has no usable form or no senses.
func (r *Renderer) Render(query string, e jisho.Entry) (Block, bool) {
	if len(e.Forms) == 0 || e.Senses == nil {
		return Block{}, false
	}
	primary := e.Forms[0]
	if primary.Word == "" && primary.Reading == "" {
		return Block{}, false
	}
	reading := primary.Reading
	if reading == "" {
		reading = query
	}
	word := primary.Word
	if word == "" {
		word = primary.Reading
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s] %s\n", r.styles.word.Render(word), reading, r.entryTags(e))

	var st senseState
	for i, s := range e.Senses {
		st = r.renderSense(&b, st, i, s)
	}
	lines := 1 + st.lines

	if len(e.Forms) > 1 {
		b.WriteString(r.styles.heading.Render("Other forms"))
		b.WriteByte('\n')
		b.WriteString(otherForms(e.Forms[1:]))
		b.WriteByte('\n')
		lines += 2
	}
	return Block{Text: b.String(), Lines: lines}, true
}

// senseState is carried from one sense to the next while rendering an entry
type senseState struct {
	partOfSpeech string
	lines        int
}

func (r *Renderer) renderSense(b *strings.Builder, st senseState, index int, s jisho.Sense) senseState {
	if len(s.EnglishGlosses) == 0 {
		return st
	}
	if label := PartOfSpeechLabel(s.PartsOfSpeech); label != "" && label != st.partOfSpeech {
		b.WriteString(r.styles.partOfSpeech.Render(label))
		b.WriteByte('\n')
		st.partOfSpeech = label
		st.lines++
	}
	fmt.Fprintf(b, "%d. %s %s\n", index+1, strings.Join(s.EnglishGlosses, ", "), r.senseTags(s.Tags))
	st.lines++
	return st
}

func (r *Renderer) entryTags(e jisho.Entry) string {
	var b strings.Builder
	if e.IsCommon {
		b.WriteString(r.styles.common.Render("(common)"))
		b.WriteByte(' ')
	}
	if len(e.JLPT) > 0 {
		if level := JLPTLevel(e.JLPT[0]); level != "" {
			fmt.Fprintf(&b, "(%s) ", r.styles.level.Render(level))
		}
	}
	return b.String()
}

func (r *Renderer) senseTags(tags []string) string {
	var b strings.Builder
	for _, tag := range tags {
		b.WriteString(r.styles.tag.Render(SenseTag(tag)))
	}
	return b.String()
}

func otherForms(forms []jisho.Form) string {
	items := make([]string, 0, len(forms))
	for _, f := range forms {
		word := f.Word
		if word == "" {
			word = f.Reading
		}
		if f.Reading == "" {
			items = append(items, word)
			continue
		}
		items = append(items, word+"["+f.Reading+"]")
	}
	return strings.Join(items, ", ")
}
