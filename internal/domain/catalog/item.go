package catalog

import (
	"fmt"
	"regexp"
	"strconv"
)

var firstIntRe = regexp.MustCompile(`\d+`)

// Item is a single recommendable assessment. Immutable after construction;
// the catalog is loaded once at startup and never mutated.
type Item struct {
	name            string
	url             string
	remoteTesting   string
	adaptiveSupport string
	duration        string
	testType        string
	description     string
}

// New validates and creates a catalog item. Name is the only required field;
// everything else is free-text metadata carried through to responses.
func New(name, url, remoteTesting, adaptiveSupport, duration, testType, description string) (Item, error) {
	if name == "" {
		return Item{}, fmt.Errorf("item name is required")
	}
	return Item{
		name:            name,
		url:             url,
		remoteTesting:   remoteTesting,
		adaptiveSupport: adaptiveSupport,
		duration:        duration,
		testType:        testType,
		description:     description,
	}, nil
}

// Name returns the unique assessment name.
func (i Item) Name() string { return i.name }

// URL returns the assessment detail page URL.
func (i Item) URL() string { return i.url }

// RemoteTesting returns the remote-testing support label.
func (i Item) RemoteTesting() string { return i.remoteTesting }

// AdaptiveSupport returns the adaptive/IRT support label.
func (i Item) AdaptiveSupport() string { return i.adaptiveSupport }

// Duration returns the raw duration field, e.g. "40 minutes".
func (i Item) Duration() string { return i.duration }

// TestType returns the test category label.
func (i Item) TestType() string { return i.testType }

// Description returns the optional item description ("" when absent).
func (i Item) Description() string { return i.description }

// DurationMinutes parses the first integer substring out of the duration
// field. A missing or unparseable duration is 0, which passes any filter.
func (i Item) DurationMinutes() int {
	m := firstIntRe.FindString(i.duration)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// CompositeText concatenates the fields used for lexical matching.
func (i Item) CompositeText() string {
	return i.name + " " + i.testType + " " + i.description
}

// Catalog is an index-stable ordered list of items. Vector-space row i
// always corresponds to item i for the lifetime of the process.
type Catalog []Item

// CompositeTexts returns the per-item matching texts in catalog order.
func (c Catalog) CompositeTexts() []string {
	texts := make([]string, len(c))
	for i := range c {
		texts[i] = c[i].CompositeText()
	}
	return texts
}

// ByName finds an item by case-sensitive exact name.
func (c Catalog) ByName(name string) (Item, bool) {
	for i := range c {
		if c[i].name == name {
			return c[i], true
		}
	}
	return Item{}, false
}
