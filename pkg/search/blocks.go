package search

import (
	"encoding/json"
	"sort"
	"strings"
)

// Note content is a keyed map of editor blocks. Only the shape below is
// understood; anything else falls back to raw text.
type blockNode struct {
	Value []element  `json:"value"`
	Meta  *blockMeta `json:"meta"`
}

type blockMeta struct {
	Order *float64       `json:"order"`
	Props map[string]any `json:"props"`
}

type element struct {
	Text     string         `json:"text"`
	Props    map[string]any `json:"props"`
	Children []element      `json:"children"`
}

// ExtractBlocks flattens a note's content into one plain-text string per
// block, ordered by the blocks' editor order. Each block's text is the
// block-level link url, if any, followed by every inline url and text run
// under it. Blank blocks are dropped. Content that does not parse as a
// block map is returned verbatim as a single block, so search still works
// over plain-text notes.
func ExtractBlocks(content string) []string {
	var doc map[string]blockNode
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return []string{content}
	}

	type keyed struct {
		key  string
		node blockNode
	}
	blocks := make([]keyed, 0, len(doc))
	for k, v := range doc {
		blocks = append(blocks, keyed{key: k, node: v})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		oi, oj := blocks[i].node.order(), blocks[j].node.order()
		if oi != oj {
			return oi < oj
		}
		return blocks[i].key < blocks[j].key
	})

	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if text := b.node.text(); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func (b blockNode) order() float64 {
	if b.Meta != nil && b.Meta.Order != nil {
		return *b.Meta.Order
	}
	return 0
}

func (b blockNode) text() string {
	var sb strings.Builder
	if b.Meta != nil {
		writeURL(&sb, b.Meta.Props)
	}
	for _, el := range b.Value {
		el.write(&sb)
	}
	return strings.TrimSpace(sb.String())
}

// write appends an element's link url and text runs. Text runs concatenate
// without separators because editors split them mid-word on formatting
// boundaries; urls get surrounding spaces so they stay distinct tokens.
func (e element) write(sb *strings.Builder) {
	writeURL(sb, e.Props)
	sb.WriteString(e.Text)
	for _, child := range e.Children {
		child.write(sb)
	}
}

func writeURL(sb *strings.Builder, props map[string]any) {
	url, _ := props["url"].(string)
	if url == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(url)
	sb.WriteByte(' ')
}
