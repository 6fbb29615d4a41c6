package collector

import (
	"bytes"

	"github.com/beevik/etree"
)

// IsBugReport reports whether data is an XML document whose root element is
// a BugCollection. It is used to skip unrelated XML files during directory
// scans.
func IsBugReport(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(trimmed); err != nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.Tag == tagCollection
}
