package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ogparsing/internal/parser"
)

func padElement(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}

	return s + strings.Repeat(" ", width-len(s))
}

// isaSegment builds a structurally valid 106-byte interchange header.
func isaSegment() string {
	elements := []string{
		"00", strings.Repeat(" ", 10),
		"00", strings.Repeat(" ", 10),
		"ZZ", padElement("SENDER", 15),
		"ZZ", padElement("RECEIVER", 15),
		"250401", "1200", "U", "00401", "000000001", "0", "P", ">",
	}

	return "ISA*" + strings.Join(elements, "*") + "~"
}

func buildInterchange(segments ...string) string {
	return isaSegment() + "\n" + strings.Join(segments, "~\n") + "~\n"
}

func x12Parsers() []*parser.X12Parser {
	return []*parser.X12Parser{parser.NewX12Parser()}
}

func TestBase832SchemaRequiredTags(t *testing.T) {
	assert.Equal(t,
		[]string{"ISA", "GS", "ST", "BCT", "SE", "GE", "IEA"},
		base832Schema().RequiredTags())
}

func TestSysco832SchemaRequiredTags(t *testing.T) {
	assert.Equal(t,
		[]string{"ISA", "GS", "ST", "BCT", "N1", "SE", "GE", "IEA"},
		sysco832Schema().RequiredTags())
}
