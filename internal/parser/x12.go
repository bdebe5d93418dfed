package parser

import (
	"bytes"
	"fmt"
	"io"

	"ogparsing/internal/schema"
)

// isaLength is the fixed byte length of an X12 interchange header. The
// element separator and segment terminator are read out of it.
const isaLength = 106

// X12Parser reads ANSI X12 interchanges into a segment tree shaped by a
// declarative schema. The same parser instance serves any schema; it keeps
// no state between calls.
type X12Parser struct{}

// NewX12Parser creates an X12 segment parser.
func NewX12Parser() *X12Parser {
	return &X12Parser{}
}

// Name identifies this parser.
func (p *X12Parser) Name() string { return "x12" }

// ParseSchema reads the whole interchange and assembles the segment tree
// the schema describes. Segments the schema does not expect at the current
// position terminate the enclosing group; required-segment validation is
// the caller's concern, so a structurally valid but incomplete file still
// parses.
func (p *X12Parser) ParseSchema(f io.ReadSeeker, s schema.Schema) (map[string]any, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	segments, err := tokenize(data)
	if err != nil {
		return nil, err
	}

	stream := &segmentStream{segments: segments}

	tree, err := consumeEntries(s, stream)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

type rawSegment struct {
	tag      string
	elements []string
}

type segmentStream struct {
	segments []rawSegment
	pos      int
}

func (s *segmentStream) peek() *rawSegment {
	if s.pos >= len(s.segments) {
		return nil
	}

	return &s.segments[s.pos]
}

func (s *segmentStream) next() *rawSegment {
	seg := s.peek()
	if seg != nil {
		s.pos++
	}

	return seg
}

// tokenize splits the interchange into tagged segments. The element
// separator and segment terminator are taken from the fixed-width ISA
// header, so no separator configuration is needed.
func tokenize(data []byte) ([]rawSegment, error) {
	data = bytes.TrimSpace(data)

	if !bytes.HasPrefix(data, []byte("ISA")) {
		return nil, ErrNotX12
	}

	if len(data) < isaLength {
		return nil, ErrShortISA
	}

	elemSep := data[3]
	segTerm := data[isaLength-1]

	var segments []rawSegment

	for _, chunk := range bytes.Split(data, []byte{segTerm}) {
		chunk = bytes.Trim(chunk, "\r\n \t")
		if len(chunk) == 0 {
			continue
		}

		fields := bytes.Split(chunk, []byte{elemSep})
		seg := rawSegment{tag: string(fields[0])}
		for _, field := range fields[1:] {
			seg.elements = append(seg.elements, string(field))
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// consumeEntries walks schema entries in order against the stream, building
// the tree node for one group.
func consumeEntries(entries []schema.Segment, stream *segmentStream) (map[string]any, error) {
	out := make(map[string]any)

	for _, entry := range entries {
		switch {
		case len(entry.Children) > 0 && entry.Loop:
			var instances []any

			for matchesGroup(entry, stream.peek()) {
				instance, err := consumeEntries(entry.Children, stream)
				if err != nil {
					return nil, err
				}
				if len(instance) == 0 {
					break
				}
				instances = append(instances, any(instance))
			}

			if len(instances) > 0 {
				out[entry.Tag] = instances
			}

		case len(entry.Children) > 0:
			group, err := consumeEntries(entry.Children, stream)
			if err != nil {
				return nil, err
			}
			if len(group) > 0 {
				out[entry.Tag] = group
			}

		case entry.Repeatable:
			var repeats []any

			for matchesLeaf(entry, stream.peek()) {
				seg := stream.next()
				if err := checkElementCount(entry, seg); err != nil {
					return nil, err
				}
				repeats = append(repeats, any(seg.elements))
			}

			if len(repeats) > 0 {
				out[entry.Tag] = repeats
			}

		default:
			if !matchesLeaf(entry, stream.peek()) {
				continue
			}

			seg := stream.next()
			if err := checkElementCount(entry, seg); err != nil {
				return nil, err
			}
			out[entry.Tag] = seg.elements
		}
	}

	return out, nil
}

// matchesGroup reports whether the current segment can open an instance of
// the group: the group's first entry decides.
func matchesGroup(group schema.Segment, seg *rawSegment) bool {
	if seg == nil || len(group.Children) == 0 {
		return false
	}

	first := group.Children[0]
	if len(first.Children) > 0 {
		return matchesGroup(first, seg)
	}

	return matchesLeaf(first, seg)
}

func matchesLeaf(entry schema.Segment, seg *rawSegment) bool {
	if seg == nil || seg.tag != entry.Tag {
		return false
	}

	if entry.SubKey != "" {
		return len(seg.elements) > 0 && seg.elements[0] == entry.SubKey
	}

	return true
}

func checkElementCount(entry schema.Segment, seg *rawSegment) error {
	if entry.ElementCount > 0 && len(seg.elements) != entry.ElementCount {
		return fmt.Errorf("%w: %s has %d elements, schema expects %d",
			ErrBadElemCount, seg.tag, len(seg.elements), entry.ElementCount)
	}

	return nil
}
