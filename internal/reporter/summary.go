package reporter

import (
	"github.com/ppiankov/fbreport/internal/narrative"
	"github.com/ppiankov/fbreport/internal/sink"
)

func (e *Emitter) summary(w writer) {
	w.section(1, func() {
		w.title(1, func() {
			w.Text("Summary")
		})

		sentence := narrative.Summarize(e.idx.Summary())
		if sentence.Empty() {
			w.paragraph(narrative.NoBugs)
			return
		}

		w.open(sink.KindParagraph)
		for _, f := range sentence {
			switch f.Kind {
			case narrative.Bold:
				w.wrap(sink.KindBold, f.Text)
			case narrative.Italic:
				w.wrap(sink.KindItalic, f.Text)
			default:
				w.Text(f.Text)
			}
		}
		w.close(sink.KindParagraph)

		w.paragraph("Here are some entry points to the report:")

		w.open(sink.KindList)
		w.open(sink.KindListItem)
		w.link(sink.Fragment(AnchorBugsByClass), "Bugs by class")
		w.close(sink.KindListItem)
		w.open(sink.KindListItem)
		w.link(sink.Fragment(AnchorBugsByCategory), "Bugs by category")
		w.close(sink.KindListItem)
		w.close(sink.KindList)
	})
}
