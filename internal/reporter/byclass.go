package reporter

import (
	"github.com/ppiankov/fbreport/internal/models"
	"github.com/ppiankov/fbreport/internal/sink"
)

func (e *Emitter) bugsByClass(w writer) {
	packages := e.idx.PackagesWithBugs()

	w.section(1, func() {
		w.title(1, func() {
			w.Text("Bugs By Class")
			w.Anchor(AnchorBugsByClass)
		})
		w.paragraph("This is a list of bugs, by class.")

		// Package overview
		w.open(sink.KindTable)
		w.headerRow("Package", "Classes", "Lines", "Bugs")
		for _, pkg := range packages {
			w.open(sink.KindRow)
			w.linkCell(sink.Fragment(PackageAnchor(pkg.Name)), pkg.Name)
			w.textCell(pkg.TotalTypes.String())
			w.textCell(pkg.TotalSize.String())
			w.textCell(pkg.TotalBugs.String())
			w.close(sink.KindRow)
		}
		w.close(sink.KindTable)

		for _, pkg := range packages {
			e.packageSection(w, pkg)
		}
	})
}

func (e *Emitter) packageSection(w writer, pkg *models.PackageStats) {
	classes := e.idx.ClassesWithBugs(pkg.Name)

	w.section(2, func() {
		w.title(2, func() {
			w.Anchor(PackageAnchor(pkg.Name))
			w.Text("Package: " + pkg.Name)
		})

		w.open(sink.KindTable)
		w.headerRow("Class Name", "Lines", "Bugs")
		for _, class := range classes {
			w.open(sink.KindRow)
			w.linkCell(sink.Fragment(ClassAnchor(class.Name)), class.Name)
			w.textCell(class.Size.String())
			w.textCell(class.Bugs.String())
			w.close(sink.KindRow)
		}
		w.close(sink.KindTable)

		for _, class := range classes {
			e.classSection(w, class.Name)
		}
	})
}

func (e *Emitter) classSection(w writer, class string) {
	w.section(3, func() {
		w.title(3, func() {
			w.Anchor(ClassAnchor(class))
			w.Text("Class: " + class)
		})

		w.open(sink.KindTable)
		w.headerRow("Category", "Lines", "Bug", "Details", "Priority")
		for _, bug := range e.idx.InstancesByClass(class) {
			category, _ := e.idx.CategoryDescription(bug.Category)
			start, end := bug.Lines()

			w.open(sink.KindRow)
			w.textCell(category)
			w.cell(func() { e.lines(w, class, start, end) })
			w.textCell(bug.LongMessage)
			w.linkCell(sink.Fragment(TypeAnchor(bug.Type)), "Details")
			w.textCell(models.PriorityLabel(bug.Priority))
			w.close(sink.KindRow)
		}
		w.close(sink.KindTable)
	})
}
