package gallery

import (
	"iter"
	"path"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/directive"
)

var (
	scanMarker = regexp.MustCompile(`^([ \t]*)\.\. ` + MarkerDirective + `::[ \t]+(?P<title>\S.*?)[ \t]*$`)
	scanOption = regexp.MustCompile(`^[ \t]+:([A-Za-z0-9_-]+):(?:[ \t]+(.*?))?[ \t]*$`)
)

// Scan yields a descriptor for every example marker in text, in source
// order. Markers inside fenced code blocks are ignored. The sequence is
// lazy and may be ranged over again.
func Scan(docName, text string) iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
		var fence directive.Fence
		for i := 0; i < len(lines); i++ {
			if fence.Open() {
				fence.Toggle(lines[i])
				continue
			}
			if fence.Toggle(lines[i]) {
				continue
			}
			m := scanMarker.FindStringSubmatch(lines[i])
			if m == nil {
				continue
			}
			indent := len(m[1])
			var tags []string
			for j := i + 1; j < len(lines); j++ {
				om := scanOption.FindStringSubmatch(lines[j])
				if om == nil || leadingWhitespace(lines[j]) <= indent {
					break
				}
				if om[1] == "tags" {
					tags = ParseTags(om[2])
				}
			}
			if !yield(NewDescriptor(m[2], docName, i+1, tags)) {
				return
			}
		}
	}
}

// SourceReader reads the text of a source document.
type SourceReader func(docName string) (string, error)

// FileReader returns a SourceReader over fsys using pathOf to locate documents.
func FileReader(fsys afero.Fs, pathOf func(docName string) string) SourceReader {
	return func(docName string) (string, error) {
		b, err := afero.ReadFile(fsys, pathOf(docName))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// ScanDocuments scans every document in docNames, skipping documents below
// skipDir. It stops at the first read error.
func ScanDocuments(docNames []string, skipDir string, read SourceReader) iter.Seq2[Descriptor, error] {
	return func(yield func(Descriptor, error) bool) {
		for _, doc := range docNames {
			if inDir(doc, skipDir) {
				continue
			}
			text, err := read(doc)
			if err != nil {
				yield(Descriptor{}, err)
				return
			}
			for d := range Scan(doc, text) {
				if !yield(d, nil) {
					return
				}
			}
		}
	}
}

func inDir(docName, dir string) bool {
	if dir == "" {
		return false
	}
	dir = path.Clean(dir)
	return docName == dir || strings.HasPrefix(docName, dir+"/")
}

func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
