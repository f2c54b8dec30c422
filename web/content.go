package web

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BlockKind bestimmt, als welches HTML-Element ein Block ausgegeben wird.
type BlockKind string

const (
	BlockH1        BlockKind = "h1"
	BlockH2        BlockKind = "h2"
	BlockH3        BlockKind = "h3"
	BlockListItem  BlockKind = "li"
	BlockParagraph BlockKind = "p"
)

// Span ist ein Textstück innerhalb eines Blocks.
type Span struct {
	Text string
	Bold bool
}

// Block ist eine dargestellte Zeile des Artikelinhalts.
type Block struct {
	Kind  BlockKind
	Spans []Span
}

// Text liefert den Klartext des Blocks.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ParseContent zerlegt Artikeltext zeilenweise in Blöcke.
// Ein abschließendes "\r" pro Zeile wird entfernt.
// Reihenfolge: "### ", "## ", "# ", "- " oder "* ", sonst Absatz. Leere Zeilen entfallen.
// Nur Absätze kennen Fettschrift ("**...**").
func ParseContent(content string) []Block {
	var blocks []Block
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, plain(BlockH3, line[4:]))
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, plain(BlockH2, line[3:]))
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, plain(BlockH1, line[2:]))
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			blocks = append(blocks, plain(BlockListItem, line[2:]))
		case strings.TrimSpace(line) != "":
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: boldSpans(line)})
		}
	}
	return blocks
}

func plain(kind BlockKind, text string) Block {
	return Block{Kind: kind, Spans: []Span{{Text: text}}}
}

func boldSpans(line string) []Span {
	var spans []Span
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: line[last:m[0]]})
		}
		spans = append(spans, Span{Text: line[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

const wordsPerMinute = 200

// ReadingTime schätzt die Lesezeit bei 200 Wörtern pro Minute, mindestens eine Minute.
func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// FormatDate formatiert ein Datum wie "January 15, 2025".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// CountLabel liefert "1 article" oder "N articles".
func CountLabel(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}
