package collector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/ppiankov/fbreport/internal/models"
)

// Element and attribute names of the bug report document
const (
	tagCollection = "BugCollection"
	tagSummary    = "FindBugsSummary"
	tagPackage    = "PackageStats"
	tagCategory   = "BugCategory"
	tagPattern    = "BugPattern"
	tagInstance   = "BugInstance"
	tagClass      = "Class"
	tagSourceLine = "SourceLine"
)

// errNoRootElement marks input that holds no XML element at all, such as
// an empty file or bare text.
var errNoRootElement = errors.New("no root element")

// MalformedReportError is returned when a document cannot be parsed or is
// missing the nodes every bug report must have.
type MalformedReportError struct {
	Source string
	Reason string
	Err    error
}

func (e *MalformedReportError) Error() string {
	var b strings.Builder
	b.WriteString("malformed bug report")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedReportError) Unwrap() error {
	return e.Err
}

// Parse builds a BugCollection from raw XML
func Parse(data []byte) (*models.BugCollection, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &MalformedReportError{Reason: "document is not well-formed XML", Err: err}
	}
	return fromDocument(doc)
}

// ParseReader builds a BugCollection from an XML stream
func ParseReader(r io.Reader) (*models.BugCollection, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &MalformedReportError{Reason: "document is not well-formed XML", Err: err}
	}
	return fromDocument(doc)
}

func fromDocument(doc *etree.Document) (*models.BugCollection, error) {
	root := doc.Root()
	if root == nil {
		return nil, &MalformedReportError{Reason: "document is not well-formed XML", Err: errNoRootElement}
	}
	if root.Tag != tagCollection {
		return nil, &MalformedReportError{Reason: fmt.Sprintf("missing %s root element", tagCollection)}
	}

	summary := root.SelectElement(tagSummary)
	if summary == nil {
		return nil, &MalformedReportError{Reason: fmt.Sprintf("missing %s element", tagSummary)}
	}

	bc := &models.BugCollection{
		Version: root.SelectAttrValue("version", ""),
		Summary: parseSummary(summary),
	}

	for _, el := range summary.SelectElements(tagPackage) {
		bc.Packages = append(bc.Packages, parsePackage(el))
	}

	for _, el := range root.SelectElements(tagCategory) {
		bc.Categories = append(bc.Categories, models.BugCategory{
			Code:        el.SelectAttrValue("category", ""),
			Description: childText(el, "Description"),
		})
	}

	for _, el := range root.SelectElements(tagPattern) {
		bc.Patterns = append(bc.Patterns, models.BugPattern{
			Type:             el.SelectAttrValue("type", ""),
			Category:         el.SelectAttrValue("category", ""),
			ShortDescription: childText(el, "ShortDescription"),
			Details:          childText(el, "Details"),
		})
	}

	for _, el := range root.SelectElements(tagInstance) {
		bc.Instances = append(bc.Instances, parseInstance(el))
	}

	return bc, nil
}

func parseSummary(el *etree.Element) models.FindBugsSummary {
	return models.FindBugsSummary{
		TotalBugs:    attr(el, "total_bugs"),
		Priority1:    attr(el, "priority_1"),
		Priority2:    attr(el, "priority_2"),
		Priority3:    attr(el, "priority_3"),
		TotalSize:    attr(el, "total_size"),
		TotalClasses: attr(el, "total_classes"),
		NumPackages:  attr(el, "num_packages"),
	}
}

// parsePackage reads a PackageStats node. Every element child is a class
// statistics row regardless of its tag.
func parsePackage(el *etree.Element) models.PackageStats {
	pkg := models.PackageStats{
		Name:       el.SelectAttrValue("package", ""),
		TotalTypes: attr(el, "total_types"),
		TotalSize:  attr(el, "total_size"),
		TotalBugs:  attr(el, "total_bugs"),
	}

	for _, child := range el.ChildElements() {
		pkg.Classes = append(pkg.Classes, models.ClassStats{
			Name: child.SelectAttrValue("class", ""),
			Size: attr(child, "size"),
			Bugs: attr(child, "bugs"),
		})
	}

	return pkg
}

func parseInstance(el *etree.Element) models.BugInstance {
	inst := models.BugInstance{
		Type:        el.SelectAttrValue("type", ""),
		Category:    el.SelectAttrValue("category", ""),
		Priority:    el.SelectAttrValue("priority", ""),
		LongMessage: childText(el, "LongMessage"),
	}

	for _, c := range el.SelectElements(tagClass) {
		inst.Classes = append(inst.Classes, models.ClassRef{
			Name:    c.SelectAttrValue("classname", ""),
			Primary: c.SelectAttrValue("primary", "") == "true",
		})
	}

	if sl := el.SelectElement(tagSourceLine); sl != nil {
		inst.SourceLine = &models.SourceLine{
			Start: sl.SelectAttrValue("start", ""),
			End:   sl.SelectAttrValue("end", ""),
		}
	}

	return inst
}

func attr(el *etree.Element, key string) models.Attr {
	return models.Attr(el.SelectAttrValue(key, ""))
}

// childText returns the full text content of the first child named tag,
// or "" when there is none.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	var b strings.Builder
	textContent(child, &b)
	return b.String()
}

// textContent concatenates all character data below el in document order.
func textContent(el *etree.Element, b *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			textContent(t, b)
		}
	}
}
