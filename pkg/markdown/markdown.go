// Package markdown converts between markdown text and the block-document
// JSON that note content is stored as. Import parses markdown into blocks
// the editor and search understand; export renders blocks back to markdown
// for file-based backups.
package markdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Block type names as the editor writes them.
const (
	TypeParagraph    = "Paragraph"
	TypeHeadingOne   = "HeadingOne"
	TypeHeadingTwo   = "HeadingTwo"
	TypeHeadingThree = "HeadingThree"
	TypeBlockquote   = "Blockquote"
	TypeCode         = "Code"
	TypeBulletedList = "BulletedList"
	TypeNumberedList = "NumberedList"
	TypeDivider      = "Divider"
)

// Document is a keyed map of content blocks.
type Document map[string]Block

// Block is one top-level content block.
type Block struct {
	ID    string    `json:"id"`
	Type  string    `json:"type"`
	Value []Element `json:"value"`
	Meta  Meta      `json:"meta"`
}

// Meta carries a block's position in the document.
type Meta struct {
	Order int            `json:"order"`
	Depth int            `json:"depth"`
	Props map[string]any `json:"props,omitempty"`
}

// Element is the single value entry of a block.
type Element struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Child        `json:"children"`
}

// Child is either a text run (Text set, possibly with formatting flags) or
// an inline element such as a link (Props carrying the url, Children
// carrying the label runs).
type Child struct {
	Text     string         `json:"text,omitempty"`
	Bold     bool           `json:"bold,omitempty"`
	Italic   bool           `json:"italic,omitempty"`
	Code     bool           `json:"code,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Child        `json:"children,omitempty"`
}

// Converter parses markdown with goldmark and assembles block documents.
type Converter struct {
	parser goldmark.Markdown
	newID  func() string
}

// NewConverter returns a converter with GFM extensions enabled.
func NewConverter() *Converter {
	return &Converter{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		newID: uuid.NewString,
	}
}

// FromMarkdown parses markdown into a block-document JSON string. Headings
// above level three flatten to level three; list items become one block
// per item with their nesting depth recorded; anything unrecognized keeps
// its plain text as a paragraph.
func (c *Converter) FromMarkdown(md string) (string, error) {
	doc := Document{}
	source := []byte(md)
	root := c.parser.Parser().Parse(text.NewReader(source))

	order := 0
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		c.appendBlock(doc, node, source, 0, &order)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode blocks: %w", err)
	}
	return string(data), nil
}

func (c *Converter) appendBlock(doc Document, node ast.Node, source []byte, depth int, order *int) {
	switch v := node.(type) {
	case *ast.Heading:
		blockType, elemType := headingTypes(v.Level)
		c.put(doc, blockType, elemType, c.inline(v, source), nil, depth, order)

	case *ast.Paragraph:
		c.put(doc, TypeParagraph, "paragraph", c.inline(v, source), nil, depth, order)

	case *ast.Blockquote:
		var children []Child
		for part := v.FirstChild(); part != nil; part = part.NextSibling() {
			if len(children) > 0 {
				children = append(children, Child{Text: " "})
			}
			children = append(children, c.inline(part, source)...)
		}
		c.put(doc, TypeBlockquote, "blockquote", children, nil, depth, order)

	case *ast.FencedCodeBlock:
		var props map[string]any
		if lang := v.Language(source); len(lang) > 0 {
			props = map[string]any{"language": string(lang)}
		}
		c.put(doc, TypeCode, "code", []Child{{Text: rawLines(v, source)}}, props, depth, order)

	case *ast.CodeBlock:
		c.put(doc, TypeCode, "code", []Child{{Text: rawLines(v, source)}}, nil, depth, order)

	case *ast.List:
		blockType, elemType := TypeBulletedList, "bulleted-list"
		if v.IsOrdered() {
			blockType, elemType = TypeNumberedList, "numbered-list"
		}
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			var children []Child
			for part := item.FirstChild(); part != nil; part = part.NextSibling() {
				if _, nested := part.(*ast.List); !nested {
					children = append(children, c.inline(part, source)...)
				}
			}
			c.put(doc, blockType, elemType, children, nil, depth, order)

			for part := item.FirstChild(); part != nil; part = part.NextSibling() {
				if nested, ok := part.(*ast.List); ok {
					c.appendBlock(doc, nested, source, depth+1, order)
				}
			}
		}

	case *ast.ThematicBreak:
		c.put(doc, TypeDivider, "divider", nil, nil, depth, order)

	default:
		if plain := plainText(node, source); plain != "" {
			c.put(doc, TypeParagraph, "paragraph", []Child{{Text: plain}}, nil, depth, order)
		}
	}
}

func (c *Converter) put(doc Document, blockType, elemType string, children []Child, props map[string]any, depth int, order *int) {
	if children == nil {
		children = []Child{}
	}
	id := c.newID()
	doc[id] = Block{
		ID:   id,
		Type: blockType,
		Value: []Element{{
			ID:       c.newID(),
			Type:     elemType,
			Props:    props,
			Children: children,
		}},
		Meta: Meta{Order: *order, Depth: depth},
	}
	*order++
}

func headingTypes(level int) (string, string) {
	switch level {
	case 1:
		return TypeHeadingOne, "heading-one"
	case 2:
		return TypeHeadingTwo, "heading-two"
	default:
		return TypeHeadingThree, "heading-three"
	}
}

// inline flattens a node's inline content into text runs and link
// children, carrying bold/italic/code formatting flags.
func (c *Converter) inline(n ast.Node, source []byte) []Child {
	var out []Child
	c.collectInline(n, source, false, false, &out)
	return out
}

func (c *Converter) collectInline(n ast.Node, source []byte, bold, italic bool, out *[]Child) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			run := string(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				run += " "
			}
			if run != "" {
				*out = append(*out, Child{Text: run, Bold: bold, Italic: italic})
			}
		case *ast.String:
			*out = append(*out, Child{Text: string(v.Value), Bold: bold, Italic: italic})
		case *ast.CodeSpan:
			*out = append(*out, Child{Text: plainText(v, source), Code: true})
		case *ast.Emphasis:
			if v.Level >= 2 {
				c.collectInline(v, source, true, italic, out)
			} else {
				c.collectInline(v, source, bold, true, out)
			}
		case *ast.Link:
			*out = append(*out, Child{
				Props:    map[string]any{"url": string(v.Destination)},
				Children: []Child{{Text: plainText(v, source)}},
			})
		case *ast.AutoLink:
			url := string(v.URL(source))
			*out = append(*out, Child{
				Props:    map[string]any{"url": url},
				Children: []Child{{Text: url}},
			})
		case *ast.Image:
			*out = append(*out, Child{
				Props:    map[string]any{"url": string(v.Destination)},
				Children: []Child{{Text: plainText(v, source)}},
			})
		default:
			c.collectInline(child, source, bold, italic, out)
		}
	}
}

// plainText collects every text segment under a node.
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// rawLines joins a code block's source lines, keeping interior newlines.
func rawLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
