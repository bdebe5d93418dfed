// Package schema declares the expected segment structure of an EDI-like
// document and the path primitives used to pull field values out of the
// parsed segment tree.
//
// A schema is a tree of named entries. Sibling order is significant: it
// expresses the physical ordering the parser walks and the shape that
// required-segment validation checks. The parsed tree mirrors the schema:
// groups become maps, repeating groups become slices of maps, repeatable
// segments become slices of element slices, and singular segments become
// element slices.
package schema

// Segment describes one expected entry: either a single tagged segment or,
// when Children is non-empty, a named group of entries. Groups with Loop set
// may repeat.
type Segment struct {
	Tag        string
	Required   bool
	Repeatable bool
	Desc       string
	// SubKey discriminates same-tag segments by their first element value
	// (e.g. two N1 groups distinguished by "SE" vs "BY").
	SubKey string
	// ElementCount pins the exact element count of fixed-width segments
	// such as ISA. Zero means unchecked.
	ElementCount int
	Loop         bool
	Children     []Segment
}

// Schema is the ordered list of top-level sections of a document.
type Schema []Segment

// Well-known top-level section tags.
const (
	SectionFileHeading = "file_heading"
	SectionHeading     = "heading"
	SectionDetail      = "detail"
	SectionSummary     = "summary"
	SectionFileFooter  = "file_footer"
)

// Group declares a named non-repeating group of entries.
func Group(tag string, children ...Segment) Segment {
	return Segment{Tag: tag, Children: children}
}

// LoopOf declares a named repeating group of entries.
func LoopOf(tag string, children ...Segment) Segment {
	return Segment{Tag: tag, Loop: true, Children: children}
}

// Required projects the schema down to only its required entries, keeping
// the group structure so callers can validate presence position by position.
func (s Schema) Required() Schema {
	return requiredSegments(s)
}

func requiredSegments(entries []Segment) []Segment {
	var out []Segment

	for _, e := range entries {
		if len(e.Children) > 0 {
			children := requiredSegments(e.Children)
			if len(children) == 0 {
				continue
			}

			kept := e
			kept.Children = children
			out = append(out, kept)
			continue
		}

		if e.Required {
			out = append(out, e)
		}
	}

	return out
}

// RequiredTags flattens the required projection into the list of segment
// tags a matching document must contain.
func (s Schema) RequiredTags() []string {
	var tags []string

	var walk func(entries []Segment)
	walk = func(entries []Segment) {
		for _, e := range entries {
			if len(e.Children) > 0 {
				walk(e.Children)
				continue
			}

			tags = append(tags, e.Tag)
		}
	}
	walk(requiredSegments(s))

	return tags
}
