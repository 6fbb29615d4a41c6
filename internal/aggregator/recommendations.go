package aggregator

import (
	"fmt"
	"sort"
)

// Hotspot is a group of bugs sharing pattern and severity
type Hotspot struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Pattern  string `json:"pattern"`
	Count    int    `json:"count"`
	Classes  int    `json:"classes"`
	Action   string `json:"action"`
}

type hotspotKey struct {
	typ      string
	severity string
}

// Hotspots groups rows by bug type and severity and orders the groups by
// severity, then by count.
func Hotspots(rows []Row) []Hotspot {
	groups := make(map[hotspotKey]*Hotspot)
	classes := make(map[hotspotKey]map[string]bool)
	var order []hotspotKey

	for _, r := range rows {
		key := hotspotKey{r.Type, r.Severity}
		g, ok := groups[key]
		if !ok {
			g = &Hotspot{
				Severity: r.Severity,
				Category: r.Category,
				Type:     r.Type,
				Pattern:  r.Pattern,
			}
			groups[key] = g
			classes[key] = make(map[string]bool)
			order = append(order, key)
		}
		g.Count++
		classes[key][r.Class] = true
	}

	hotspots := make([]Hotspot, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.Classes = len(classes[key])
		g.Action = hotspotAction(g)
		hotspots = append(hotspots, *g)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		ri, rj := severityRank(hotspots[i].Severity), severityRank(hotspots[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return hotspots[i].Count > hotspots[j].Count
	})

	return hotspots
}

// TopHotspots returns at most n hotspots
func TopHotspots(hotspots []Hotspot, n int) []Hotspot {
	if n < 0 || len(hotspots) <= n {
		return hotspots
	}
	return hotspots[:n]
}

func hotspotAction(h *Hotspot) string {
	noun := "bug"
	if h.Count > 1 {
		noun = "bugs"
	}
	where := "1 class"
	if h.Classes != 1 {
		where = fmt.Sprintf("%d classes", h.Classes)
	}

	switch h.Severity {
	case SeverityHigh:
		return fmt.Sprintf("Fix %d %s %q in %s", h.Count, noun, h.Pattern, where)
	case SeverityMedium:
		return fmt.Sprintf("Review %d %s %q in %s", h.Count, noun, h.Pattern, where)
	default:
		return fmt.Sprintf("Consider %d %s %q in %s", h.Count, noun, h.Pattern, where)
	}
}
