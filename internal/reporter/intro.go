package reporter

import "github.com/ppiankov/fbreport/internal/sink"

func (e *Emitter) intro(w writer) {
	w.section(1, func() {
		w.title(1, func() {
			w.Text(Name)
		})

		w.open(sink.KindParagraph)
		w.Text("This is a report of possible bugs found by the ")
		w.link(ToolURL, "FindBugs")
		w.Text(" program, which uses static analysis to find bugs in Java code. The report was generated with the following parameters:")
		w.close(sink.KindParagraph)

		w.Text("FindBugs version: " + e.version())
		w.LineBreak()
		w.Text("Effort: " + lower(e.opts.Effort))
		w.LineBreak()
		w.Text("Bug Priority Threshold: " + lower(e.opts.Threshold))
	})
}
