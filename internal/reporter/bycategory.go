package reporter

import (
	"strconv"

	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/sink"
)

func (e *Emitter) bugsByCategory(w writer) {
	categories := e.idx.Categories()

	w.section(1, func() {
		w.title(1, func() {
			w.Text("Bugs By Category")
			w.Anchor(AnchorBugsByCategory)
		})
		w.paragraph("This is a list of bugs, by category.")

		// Category overview with the patterns nested under each category
		w.open(sink.KindTable)
		w.headerRow("Category / Bug Pattern", "Bugs")
		for _, c := range categories {
			w.open(sink.KindRow)
			w.cell(func() {
				w.open(sink.KindBold)
				w.link(sink.Fragment(CategoryAnchor(c.Code)), c.Description)
				w.close(sink.KindBold)
			})
			w.cell(func() {
				w.wrap(sink.KindBold, strconv.Itoa(e.idx.CategoryCount(c.Code)))
			})
			w.close(sink.KindRow)

			for _, p := range e.idx.PatternsByCategory(c.Code) {
				w.open(sink.KindRow)
				w.cell(func() {
					w.open(sink.KindList)
					w.open(sink.KindListItem)
					w.link(sink.Fragment(TypeAnchor(p.Type)), p.ShortDescription)
					w.close(sink.KindListItem)
					w.close(sink.KindList)
				})
				w.textCell(strconv.Itoa(e.idx.TypeCount(p.Type)))
				w.close(sink.KindRow)
			}
		}
		w.close(sink.KindTable)

		for _, c := range categories {
			e.categorySection(w, c)
		}
	})
}

func (e *Emitter) categorySection(w writer, c models.BugCategory) {
	patterns := e.idx.PatternsByCategory(c.Code)

	w.section(2, func() {
		w.title(2, func() {
			w.Text(c.Description)
			w.Anchor(CategoryAnchor(c.Code))
		})

		w.open(sink.KindTable)
		w.headerRow("Bug Pattern", "Bugs")
		for _, p := range patterns {
			w.open(sink.KindRow)
			w.linkCell(sink.Fragment(TypeAnchor(p.Type)), p.ShortDescription)
			w.textCell(strconv.Itoa(e.idx.TypeCount(p.Type)))
			w.close(sink.KindRow)
		}
		w.close(sink.KindTable)

		for _, p := range patterns {
			e.patternSection(w, p)
		}
	})
}

func (e *Emitter) patternSection(w writer, p *models.BugPattern) {
	w.section(3, func() {
		w.title(3, func() {
			w.Text(p.ShortDescription)
			w.Anchor(TypeAnchor(p.Type))
		})
		w.Raw(p.Details)

		w.open(sink.KindTable)
		w.headerRow("Class", "Lines", "Details")
		for _, class := range e.idx.ClassesByType(p.Type) {
			for _, bug := range e.idx.InstancesByTypeAndClass(p.Type, class) {
				start, end := bug.Lines()

				w.open(sink.KindRow)
				w.linkCell(sink.Fragment(ClassAnchor(class)), class)
				w.cell(func() { e.lines(w, class, start, end) })
				w.textCell(bug.LongMessage)
				w.close(sink.KindRow)
			}
		}
		w.close(sink.KindTable)
	})
}
