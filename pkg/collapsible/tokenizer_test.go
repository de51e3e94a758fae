package collapsible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTag(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantName  string
		wantKind  TagKind
		wantAttrs string
	}{
		{
			name:     "open_tag",
			text:     "<CollapsibleSection>",
			wantOK:   true,
			wantName: "CollapsibleSection",
			wantKind: TagOpen,
		},
		{
			name:     "close_tag",
			text:     "</CollapsibleContent>",
			wantOK:   true,
			wantName: "CollapsibleContent",
			wantKind: TagClose,
		},
		{
			name:     "self_closing",
			text:     "<FiBook />",
			wantOK:   true,
			wantName: "FiBook",
			wantKind: TagSelfClosing,
		},
		{
			name:      "arrow_function_attribute",
			text:      "<CollapsibleHeaderButton onClick={() => toggle('a')} aria-expanded={!x}>",
			wantOK:    true,
			wantName:  "CollapsibleHeaderButton",
			wantKind:  TagOpen,
			wantAttrs: "onClick={() => toggle('a')} aria-expanded={!x}",
		},
		{
			name:      "element_inside_attribute",
			text:      "<CollapsibleHeader icon={<FiBook />}>",
			wantOK:    true,
			wantName:  "CollapsibleHeader",
			wantKind:  TagOpen,
			wantAttrs: "icon={<FiBook />}",
		},
		{
			name:      "quoted_greater_than",
			text:      `<a title="x>y">`,
			wantOK:    true,
			wantName:  "a",
			wantKind:  TagOpen,
			wantAttrs: `title="x>y"`,
		},
		{
			name:     "fragment",
			text:     "<>",
			wantOK:   true,
			wantName: "",
			wantKind: TagOpen,
		},
		{
			name:   "comparison",
			text:   "a < b",
			wantOK: false,
		},
		{
			name:   "generic_type",
			text:   "useState<Record<string, boolean>>({})",
			wantOK: false,
		},
		{
			name:   "unterminated",
			text:   "<div className=\"a",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := 0
			for start < len(tt.text) && tt.text[start] != '<' {
				start++
			}
			tag, ok := ReadTag(tt.text, start)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, tag.Name)
			assert.Equal(t, tt.wantKind, tag.Kind)
			assert.Equal(t, tt.wantAttrs, tag.Attrs)
			assert.Equal(t, len(tt.text), tag.End)
		})
	}
}

func TestTokenize_SkipsCode(t *testing.T) {
	text := "const a = useState<Record<string, boolean>>({}); if (i < n) {}\n<div><FiBook /></div>"
	tags := Tokenize(text)

	require.Len(t, tags, 3)
	assert.Equal(t, "div", tags[0].Name)
	assert.Equal(t, TagSelfClosing, tags[1].Kind)
	assert.Equal(t, TagClose, tags[2].Kind)
}

func TestMatchClose_TracksDepth(t *testing.T) {
	text := "<C><C>inner</C></C><C>next</C>"
	tags := Tokenize(text)

	require.Len(t, tags, 6)
	assert.Equal(t, 3, matchClose(tags, 0))
	assert.Equal(t, 2, matchClose(tags, 1))
	assert.Equal(t, 5, matchClose(tags, 4))
	assert.Equal(t, -1, matchClose(Tokenize("<C><C></C>"), 0))
}
