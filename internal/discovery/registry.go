package discovery

// BuildTool names a build system layout
type BuildTool string

const (
	BuildMaven  BuildTool = "maven"
	BuildGradle BuildTool = "gradle"
	BuildAnt    BuildTool = "ant"
)

// LayoutInfo describes where a build tool leaves analyzer output.
type LayoutInfo struct {
	Marker  string   // file that identifies the build tool in a module root
	Reports []string // glob patterns of bug reports, relative to the module root
	Xref    []string // directories of cross-referenced source pages
}

// Registry is the single source of truth for conventional report locations.
var Registry = map[BuildTool]LayoutInfo{
	BuildMaven: {
		Marker:  "pom.xml",
		Reports: []string{"target/findbugsXml.xml", "target/findbugs.xml", "target/spotbugsXml.xml"},
		Xref:    []string{"target/site/xref"},
	},
	BuildGradle: {
		Marker:  "build.gradle",
		Reports: []string{"build/reports/findbugs/*.xml", "build/reports/spotbugs/*.xml"},
		Xref:    nil,
	},
	BuildAnt: {
		Marker:  "build.xml",
		Reports: []string{"findbugs.xml", "build/findbugs.xml", "build/findbugs/*.xml"},
		Xref:    []string{"build/xref"},
	},
}
