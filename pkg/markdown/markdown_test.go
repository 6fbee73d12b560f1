package markdown

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"

	"github.com/chelle-c/second-brain/pkg/search"
)

func TestFromMarkdownBlockTypes(t *testing.T) {
	c := NewConverter()

	content, err := c.FromMarkdown("# Title\n\nA paragraph.\n\n> A quote.\n\n---")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		t.Fatalf("output is not a block map: %v", err)
	}

	types := make([]string, 0, len(doc))
	for _, b := range sortedBlocks(doc) {
		types = append(types, b.Type)
	}
	want := []string{TypeHeadingOne, TypeParagraph, TypeBlockquote, TypeDivider}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("expected %v, got %v", want, types)
	}
}

func TestFromMarkdownSearchable(t *testing.T) {
	c := NewConverter()

	content, err := c.FromMarkdown("# Plans\n\nBuy milk tomorrow.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := search.ExtractBlocks(content)
	want := []string{"Plans", "Buy milk tomorrow."}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("expected %v, got %v", want, blocks)
	}
}

func TestFromMarkdownLinkVisibleToSearch(t *testing.T) {
	c := NewConverter()

	content, err := c.FromMarkdown("see [the site](https://example.com)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := search.ExtractBlocks(content)
	if len(blocks) != 1 || blocks[0] != "see https://example.com the site" {
		t.Errorf("link url should be searchable, got %v", blocks)
	}
}

func TestFromMarkdownListDepths(t *testing.T) {
	c := NewConverter()

	content, err := c.FromMarkdown("- parent\n  - nested\n- sibling")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		t.Fatalf("output is not a block map: %v", err)
	}

	type td struct {
		Text  string
		Depth int
	}
	var got []td
	for _, b := range sortedBlocks(doc) {
		if b.Type != TypeBulletedList {
			t.Fatalf("expected bulleted list blocks, got %s", b.Type)
		}
		got = append(got, td{Text: b.Value[0].Children[0].Text, Depth: b.Meta.Depth})
	}
	want := []td{{"parent", 0}, {"nested", 1}, {"sibling", 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFromMarkdownEmpty(t *testing.T) {
	c := NewConverter()

	content, err := c.FromMarkdown("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "{}" {
		t.Errorf("empty markdown should give an empty block map, got %q", content)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		md   string
	}{
		{"heading and paragraph", "# Title\n\nA paragraph."},
		{"all heading levels", "# One\n\n## Two\n\n### Three"},
		{"bulleted list", "- one\n- two\n- three"},
		{"numbered list", "1. first\n2. second"},
		{"nested list", "- parent\n  - nested"},
		{"quote", "> something quotable"},
		{"divider", "above\n\n---\n\nbelow"},
		{"code fence", "```go\nfmt.Println(\"hi\")\n```"},
		{"emphasis", "**bold** and *italic* runs"},
		{"link", "see [the site](https://example.com) here"},
	}

	c := NewConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := c.FromMarkdown(tt.md)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ToMarkdown(content); got != tt.md {
				t.Errorf("round trip drifted:\nin:  %q\nout: %q", tt.md, got)
			}
		})
	}
}

func TestToMarkdownFailSoft(t *testing.T) {
	if got := ToMarkdown("already plain text"); got != "already plain text" {
		t.Errorf("plain text should come back unchanged, got %q", got)
	}
	if got := ToMarkdown("{}"); got != "" {
		t.Errorf("empty document should render empty, got %q", got)
	}
}

func TestSortedBlocksStable(t *testing.T) {
	doc := Document{
		"z": {ID: "z", Type: TypeParagraph, Meta: Meta{Order: 0}},
		"a": {ID: "a", Type: TypeParagraph, Meta: Meta{Order: 0}},
		"m": {ID: "m", Type: TypeParagraph, Meta: Meta{Order: 1}},
	}

	blocks := sortedBlocks(doc)
	ids := []string{blocks[0].ID, blocks[1].ID, blocks[2].ID}
	if !sort.StringsAreSorted(ids[:2]) || ids[2] != "m" {
		t.Errorf("ties should break by id, got %v", ids)
	}
}
