package aggregator

import (
	"sort"

	"github.com/ppiankov/fbreport/internal/models"
)

type typeClass struct {
	typ   string
	class string
}

// Index groups a bug collection for the report views. It is built in a
// single pass and is read-only afterwards.
type Index struct {
	bc *models.BugCollection

	packages      []*models.PackageStats
	classes       map[string][]*models.ClassStats
	byClass       map[string][]*models.BugInstance
	byType        map[string][]*models.BugInstance
	byTypeClass   map[typeClass][]*models.BugInstance
	classesByType map[string][]string
	categoryCount map[string]int
	patternsByCat map[string][]*models.BugPattern
	categories    map[string]*models.BugCategory
	patterns      map[string]*models.BugPattern
}

// Build indexes bc. The collection must not be modified while the index is
// in use.
func Build(bc *models.BugCollection) *Index {
	idx := &Index{
		bc:            bc,
		classes:       make(map[string][]*models.ClassStats),
		byClass:       make(map[string][]*models.BugInstance),
		byType:        make(map[string][]*models.BugInstance),
		byTypeClass:   make(map[typeClass][]*models.BugInstance),
		classesByType: make(map[string][]string),
		categoryCount: make(map[string]int),
		patternsByCat: make(map[string][]*models.BugPattern),
		categories:    make(map[string]*models.BugCategory),
		patterns:      make(map[string]*models.BugPattern),
	}

	// Packages and classes with bugs, document order
	for i := range bc.Packages {
		pkg := &bc.Packages[i]
		if pkg.TotalBugs.Int() <= 0 {
			continue
		}
		idx.packages = append(idx.packages, pkg)
		for j := range pkg.Classes {
			if pkg.Classes[j].Bugs.Int() > 0 {
				idx.classes[pkg.Name] = append(idx.classes[pkg.Name], &pkg.Classes[j])
			}
		}
	}

	for i := range bc.Categories {
		c := &bc.Categories[i]
		if _, dup := idx.categories[c.Code]; !dup {
			idx.categories[c.Code] = c
		}
	}

	for i := range bc.Patterns {
		p := &bc.Patterns[i]
		if _, dup := idx.patterns[p.Type]; !dup {
			idx.patterns[p.Type] = p
		}
		idx.patternsByCat[p.Category] = append(idx.patternsByCat[p.Category], p)
	}

	// Instances
	seen := make(map[typeClass]bool)
	for i := range bc.Instances {
		inst := &bc.Instances[i]
		idx.byType[inst.Type] = append(idx.byType[inst.Type], inst)
		idx.categoryCount[inst.Category]++

		if primary, ok := inst.PrimaryClass(); ok {
			idx.byClass[primary] = append(idx.byClass[primary], inst)
			key := typeClass{inst.Type, primary}
			if !seen[key] {
				seen[key] = true
				idx.classesByType[inst.Type] = append(idx.classesByType[inst.Type], primary)
			}
		}

		for _, ref := range inst.Classes {
			key := typeClass{inst.Type, ref.Name}
			idx.byTypeClass[key] = append(idx.byTypeClass[key], inst)
		}
	}

	for _, names := range idx.classesByType {
		sort.Strings(names)
	}

	return idx
}

// Collection returns the indexed bug collection
func (x *Index) Collection() *models.BugCollection {
	return x.bc
}

// Summary returns the project totals
func (x *Index) Summary() models.FindBugsSummary {
	return x.bc.Summary
}

// PackagesWithBugs returns the packages whose total_bugs is above zero, in
// document order.
func (x *Index) PackagesWithBugs() []*models.PackageStats {
	return x.packages
}

// ClassesWithBugs returns the classes of pkg whose bug count is above zero,
// in document order. Only packages with bugs are indexed.
func (x *Index) ClassesWithBugs(pkg string) []*models.ClassStats {
	return x.classes[pkg]
}

// InstancesByClass returns the instances whose primary class is class.
func (x *Index) InstancesByClass(class string) []*models.BugInstance {
	return x.byClass[class]
}

// Categories returns every declared category in document order.
func (x *Index) Categories() []models.BugCategory {
	return x.bc.Categories
}

// PatternsByCategory returns the patterns declared under code.
func (x *Index) PatternsByCategory(code string) []*models.BugPattern {
	return x.patternsByCat[code]
}

// CategoryCount returns how many instances carry the category code.
func (x *Index) CategoryCount(code string) int {
	return x.categoryCount[code]
}

// InstancesByType returns the instances of a bug type in document order.
func (x *Index) InstancesByType(typ string) []*models.BugInstance {
	return x.byType[typ]
}

// TypeCount returns how many instances have the bug type.
func (x *Index) TypeCount(typ string) int {
	return len(x.byType[typ])
}

// ClassesByType returns the sorted, de-duplicated primary class names of
// the instances of a bug type.
func (x *Index) ClassesByType(typ string) []string {
	return x.classesByType[typ]
}

// InstancesByTypeAndClass returns the instances of typ that reference class
// through any class reference, primary or not. An instance that references
// the class more than once appears once per reference.
func (x *Index) InstancesByTypeAndClass(typ, class string) []*models.BugInstance {
	return x.byTypeClass[typeClass{typ, class}]
}

// CategoryDescription resolves a category code. The code itself is returned
// when the category is not declared.
func (x *Index) CategoryDescription(code string) (string, bool) {
	if c, ok := x.categories[code]; ok {
		return c.Description, true
	}
	return code, false
}

// Pattern looks up a bug pattern by type code.
func (x *Index) Pattern(typ string) (*models.BugPattern, bool) {
	p, ok := x.patterns[typ]
	return p, ok
}
