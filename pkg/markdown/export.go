package markdown

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ToMarkdown renders a block document back to markdown. Content that does
// not parse as a block map is assumed to be plain text already and comes
// back unchanged.
func ToMarkdown(content string) string {
	var doc Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return content
	}

	blocks := sortedBlocks(doc)

	var units []string
	counter := 0
	for i, b := range blocks {
		line := renderBlock(b, &counter, prevBlock(blocks, i))
		if line == "" {
			continue
		}
		if isListType(b.Type) && i > 0 && isListType(blocks[i-1].Type) {
			units[len(units)-1] += "\n" + line
			continue
		}
		units = append(units, line)
	}
	return strings.Join(units, "\n\n")
}

func sortedBlocks(doc Document) []Block {
	blocks := make([]Block, 0, len(doc))
	for id, b := range doc {
		if b.ID == "" {
			b.ID = id
		}
		blocks = append(blocks, b)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Meta.Order != blocks[j].Meta.Order {
			return blocks[i].Meta.Order < blocks[j].Meta.Order
		}
		return blocks[i].ID < blocks[j].ID
	})
	return blocks
}

func prevBlock(blocks []Block, i int) *Block {
	if i == 0 {
		return nil
	}
	return &blocks[i-1]
}

func renderBlock(b Block, counter *int, prev *Block) string {
	indent := strings.Repeat("  ", b.Meta.Depth)
	body := inlineMarkdown(b)

	switch b.Type {
	case TypeHeadingOne:
		return "# " + body
	case TypeHeadingTwo:
		return "## " + body
	case TypeHeadingThree:
		return "### " + body
	case TypeBlockquote:
		return "> " + body
	case TypeCode:
		lang, _ := elementProps(b)["language"].(string)
		return "```" + lang + "\n" + rawText(b) + "\n```"
	case TypeBulletedList:
		return indent + "- " + body
	case TypeNumberedList:
		if prev == nil || prev.Type != TypeNumberedList || prev.Meta.Depth != b.Meta.Depth {
			*counter = 1
		} else {
			*counter++
		}
		return fmt.Sprintf("%s%d. %s", indent, *counter, body)
	case TypeDivider:
		return "---"
	default:
		return body
	}
}

func elementProps(b Block) map[string]any {
	if len(b.Value) == 0 {
		return nil
	}
	return b.Value[0].Props
}

// rawText joins a block's runs verbatim, for code blocks where formatting
// markers must not be re-applied.
func rawText(b Block) string {
	var sb strings.Builder
	for _, el := range b.Value {
		for _, child := range el.Children {
			sb.WriteString(child.Text)
		}
	}
	return sb.String()
}

func inlineMarkdown(b Block) string {
	var sb strings.Builder
	for _, el := range b.Value {
		for _, child := range el.Children {
			sb.WriteString(childMarkdown(child))
		}
	}
	return strings.TrimSpace(sb.String())
}

func childMarkdown(c Child) string {
	if url, ok := c.Props["url"].(string); ok && url != "" {
		label := ""
		for _, inner := range c.Children {
			label += childMarkdown(inner)
		}
		if label == "" {
			label = url
		}
		return "[" + label + "](" + url + ")"
	}

	text := c.Text
	if text == "" {
		return ""
	}
	if c.Code {
		return "`" + text + "`"
	}
	// Formatting wraps the run without swallowing its edge whitespace.
	leading := text[:len(text)-len(strings.TrimLeft(text, " "))]
	trailing := text[len(strings.TrimRight(text, " ")):]
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}
	if c.Bold {
		core = "**" + core + "**"
	}
	if c.Italic {
		core = "*" + core + "*"
	}
	return leading + core + trailing
}
