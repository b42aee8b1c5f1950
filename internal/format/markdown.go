package format

import (
	"strings"
)

// Markdown re-emits blocks as Markdown for terminal renderers. Fragment text
// is escaped so a CommonMark renderer shows it literally; only the bold spans
// Render would emit survive, as ** pairs.
func Markdown(blocks []Block) string {
	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch blk := block.(type) {
		case PlainParagraph:
			rendered = append(rendered, markdownText(blk.Text))

		case TitledParagraph:
			section := "### " + markdownText(blk.Title)
			if blk.Body != "" {
				section += "\n\n" + markdownText(blk.Body)
			}
			rendered = append(rendered, section)

		case TitledBulletList:
			var b strings.Builder
			b.WriteString("### " + markdownText(blk.Title) + "\n\n")
			if blk.Intro != "" {
				b.WriteString(markdownText(blk.Intro) + "\n\n")
			}
			for i, item := range blk.Items {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- " + markdownText(item))
			}
			rendered = append(rendered, b.String())
		}
	}
	return strings.Join(rendered, "\n\n")
}

// inlineSpecial are the characters CommonMark may read as inline syntax
const inlineSpecial = "\\`*_[]<>|~&"

// markdownText escapes one fragment line by line. Bold spans never cross a
// line, so scanning each line on its own finds the same spans as Render.
func markdownText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = markdownLine(line)
	}
	return strings.Join(lines, "\n")
}

func markdownLine(line string) string {
	// Indentation would turn into a code block
	rest := strings.TrimLeft(line, " \t")

	var b strings.Builder
	switch {
	case rest == "":
		return ""
	case strings.IndexByte("#-+=", rest[0]) >= 0:
		b.WriteByte('\\')
		b.WriteByte(rest[0])
		rest = rest[1:]
	default:
		if n := leadingDigits(rest); n > 0 && n < len(rest) && (rest[n] == '.' || rest[n] == ')') {
			b.WriteString(rest[:n])
			b.WriteByte('\\')
			b.WriteByte(rest[n])
			rest = rest[n+1:]
		}
	}

	last := 0
	for {
		start, end, ok := findBold(rest, last)
		if !ok {
			break
		}
		escapeInline(&b, rest[last:start])
		if inner := rest[start+len(boldMarker) : end-len(boldMarker)]; inner != "" {
			b.WriteString(boldMarker)
			escapeInline(&b, inner)
			b.WriteString(boldMarker)
		}
		last = end
	}
	escapeInline(&b, rest[last:])
	return b.String()
}

func escapeInline(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(inlineSpecial, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
