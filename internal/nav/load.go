package nav

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed navigation.yml
var defaultNavigation []byte

var defaultTree = sync.OnceValue(func() *Tree {
	t, err := Parse(defaultNavigation)
	if err != nil {
		panic(fmt.Sprintf("nav: embedded navigation is invalid: %v", err))
	}
	return t
})

// Default returns the navigation shipped with the binary.
func Default() *Tree { return defaultTree() }

// rawEntry mirrors the authored YAML shape before it is classified.
type rawEntry struct {
	Title    string     `yaml:"title"`
	Href     string     `yaml:"href"`
	Links    []rawEntry `yaml:"links"`
	Sublinks []rawEntry `yaml:"sublinks"`
}

type document struct {
	Navigation []rawEntry `yaml:"navigation"`
}

// ValidationError collects every malformed node found while loading a
// navigation document.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string { return "invalid navigation: " + e.err.Error() }

func (e *ValidationError) Unwrap() error { return e.err }

// Issues returns the individual node errors.
func (e *ValidationError) Issues() []error { return multierr.Errors(e.err) }

// LoadFile reads and validates a navigation YAML file.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading navigation %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading navigation %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a navigation document and classifies every node. A node that
// is ambiguously both a page and a group is rejected rather than resolved.
func Parse(data []byte) (*Tree, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding navigation: %w", err)
	}
	if len(doc.Navigation) == 0 {
		return nil, &ValidationError{err: &NodeError{Reason: "navigation has no sections"}}
	}

	var errs error
	t := &Tree{}
	for _, raw := range doc.Navigation {
		path := []string{raw.Title}
		switch {
		case raw.Href != "":
			errs = multierr.Append(errs, &NodeError{Path: path, Reason: "top-level section must not have an href"})
			continue
		case len(raw.Sublinks) > 0:
			errs = multierr.Append(errs, &NodeError{Path: path, Reason: "top-level section must declare links, not sublinks"})
			continue
		case len(raw.Links) == 0:
			errs = multierr.Append(errs, &NodeError{Path: path, Reason: "top-level section has no links"})
			continue
		}
		section, err := classify(raw, nil)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		t.Sections = append(t.Sections, section)
	}
	if errs != nil {
		return nil, &ValidationError{err: errs}
	}

	for _, s := range t.Sections {
		t.flat = append(t.flat, s.Children...)
	}
	return t, nil
}

// classify converts a raw node and its descendants, collecting every error.
func classify(raw rawEntry, parent []string) (*Entry, error) {
	path := append(append([]string(nil), parent...), raw.Title)

	var errs error
	if strings.TrimSpace(raw.Title) == "" {
		errs = multierr.Append(errs, &NodeError{Path: path, Reason: "entry has no title"})
	}
	if len(raw.Links) > 0 && len(raw.Sublinks) > 0 {
		errs = multierr.Append(errs, &NodeError{Path: path, Reason: "entry declares both links and sublinks"})
	}
	if raw.Href != "" && len(raw.Links) > 0 {
		errs = multierr.Append(errs, &NodeError{Path: path, Reason: "entry with href must use sublinks, not links"})
	}
	if raw.Href == "" && len(raw.Links) == 0 && len(raw.Sublinks) == 0 {
		errs = multierr.Append(errs, &NodeError{Path: path, Reason: "entry has neither href nor children"})
	}
	if raw.Href != "" && !strings.HasPrefix(raw.Href, "/") {
		errs = multierr.Append(errs, &NodeError{Path: path, Reason: fmt.Sprintf("href %q must be absolute", raw.Href)})
	}

	e := &Entry{Title: raw.Title, Href: raw.Href, Kind: KindGroup}
	if raw.Href != "" {
		e.Kind = KindPage
	}

	children := raw.Links
	if len(children) == 0 {
		children = raw.Sublinks
	}
	for _, c := range children {
		child, err := classify(c, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		e.Children = append(e.Children, child)
	}

	if errs != nil {
		return nil, errs
	}
	return e, nil
}
