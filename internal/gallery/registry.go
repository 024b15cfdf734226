package gallery

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

// ErrDuplicateExample is matched by every DuplicateError.
var ErrDuplicateExample = errors.New("duplicate example")

// ErrReservedExampleID is returned for an example whose ID would replace
// the gallery index page.
var ErrReservedExampleID = errors.New("reserved example identifier")

// DuplicateError reports two examples, at different locations, whose
// titles map to the same ID.
type DuplicateError struct {
	ID       string
	Existing Descriptor
	Incoming Descriptor
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("there is already an example titled %q (%s); %q (%s) has the same identifier %q",
		e.Existing.Title, e.Existing.Location(), e.Incoming.Title, e.Incoming.Location(), e.ID)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicateExample }

// Entry is a registered example with its parsed content.
type Entry struct {
	Descriptor
	// Content is the parsed body of the marker.
	Content []doctree.Node
	// RawContent is the unparsed body, dedented.
	RawContent []string

	// Filled in by the HTML post-processor.
	SourceHTML string
	PageHTML   string
	Fragment   string
}

// PageDocName returns the docname of the example's generated page in dir.
func (e *Entry) PageDocName(dir string) string {
	return exampleDocName(dir, e.ID)
}

// Registry holds examples keyed by ID. It is not safe for concurrent use;
// each read worker owns one and the builder merges them.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds e. Registering an ID again from the same location replaces
// the previous entry and reports added=false; from a different location it
// fails with a *DuplicateError.
func (r *Registry) Register(e *Entry) (added bool, err error) {
	if e.ID == "" {
		return false, fmt.Errorf("example %q at %s has an empty identifier", e.Title, e.Location())
	}
	prev, ok := r.entries[e.ID]
	if !ok {
		r.entries[e.ID] = e
		return true, nil
	}
	if prev.Location() != e.Location() {
		return false, &DuplicateError{ID: e.ID, Existing: prev.Descriptor, Incoming: e.Descriptor}
	}
	r.entries[e.ID] = e
	return false, nil
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered examples.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns all entries sorted by title, then ID.
func (r *Registry) Entries() []*Entry {
	out := slices.Collect(maps.Values(r.entries))
	slices.SortFunc(out, func(a, b *Entry) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Descriptors returns the descriptors of all entries, sorted like Entries.
func (r *Registry) Descriptors() []Descriptor {
	entries := r.Entries()
	out := make([]Descriptor, len(entries))
	for i, e := range entries {
		out[i] = e.Descriptor
	}
	return out
}

// Purge removes every example marked in docName and returns how many were removed.
func (r *Registry) Purge(docName string) int {
	n := 0
	for id, e := range r.entries {
		if e.DocName == docName {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Merge registers every entry of other into r, in source order, so that a
// conflict is reported the same way as during a single read.
func (r *Registry) Merge(other *Registry) error {
	if other == nil {
		return nil
	}
	entries := slices.Collect(maps.Values(other.entries))
	slices.SortFunc(entries, func(a, b *Entry) int {
		return cmp.Or(cmp.Compare(a.DocName, b.DocName), cmp.Compare(a.Line, b.Line))
	})
	for _, e := range entries {
		if _, err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Reduce merges registries in order into a new registry.
func Reduce(registries ...*Registry) (*Registry, error) {
	out := NewRegistry()
	for _, reg := range registries {
		if err := out.Merge(reg); err != nil {
			return nil, err
		}
	}
	return out, nil
}
