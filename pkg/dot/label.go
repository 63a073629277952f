package dot

import (
	"fmt"
	"html"
	"strings"

	"github.com/dotgit-tools/gitgraph/pkg/history"
)

const (
	// maxNodeWidth is the character width subject lines are wrapped to.
	maxNodeWidth = 60
	// maxRefsPerRow caps how many ref badges share one label row.
	maxRefsPerRow = 3

	colorBranchBadge = "red"
	colorTagBadge    = "green"
)

const timeFormat = "2006-01-02 15:04:05"

// commitLabel builds the HTML-like table label for a commit node: ref
// badges, then short hash / actor / time, then the wrapped subject.
func commitLabel(c *history.Commit) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(`<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="1">`)

	b.WriteString(refRows(c))

	b.WriteString("<TR>")
	fmt.Fprintf(&b, `<TD ALIGN="LEFT">%s</TD>`, html.EscapeString(c.ShortHash))
	fmt.Fprintf(&b, `<TD ALIGN="LEFT">%s</TD>`, html.EscapeString(c.Actor))
	fmt.Fprintf(&b, `<TD ALIGN="RIGHT">%s</TD>`, c.Time.Format(timeFormat))
	b.WriteString("</TR>")

	b.WriteString("<TR>")
	fmt.Fprintf(&b, `<TD ALIGN="LEFT" COLSPAN="%d">%s</TD>`, maxRefsPerRow, breakLine(c.Subject))
	b.WriteString("</TR>")

	b.WriteString("</TABLE>")
	b.WriteString(">")
	return b.String()
}

// refRows renders branch and tag badges, wrapping to a new table row after
// every maxRefsPerRow badges.
func refRows(c *history.Commit) string {
	if len(c.Branches) == 0 && len(c.Tags) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<TR>")
	count := 0
	badge := func(color, name string) {
		if count == maxRefsPerRow {
			b.WriteString("</TR><TR>")
			count = 0
		}
		fmt.Fprintf(&b, `<TD ALIGN="LEFT" BGCOLOR="%s" BORDER="1">%s</TD> `, color, html.EscapeString(name))
		count++
	}

	for _, name := range c.Branches {
		badge(colorBranchBadge, name)
	}
	for _, name := range c.Tags {
		badge(colorTagBadge, name)
	}
	b.WriteString("</TR>")
	return b.String()
}

// breakLine wraps a subject into maxNodeWidth chunks, escaping each chunk
// and joining with left-aligned HTML breaks. Every line, including the
// last, ends with a break so Graphviz keeps the block left-aligned.
func breakLine(line string) string {
	const breaker = `<BR ALIGN="LEFT"/>`

	runes := []rune(line)
	var b strings.Builder
	for pos := 0; pos < len(runes); pos += maxNodeWidth {
		end := min(pos+maxNodeWidth, len(runes))
		b.WriteString(html.EscapeString(string(runes[pos:end])))
		b.WriteString(breaker)
	}
	if len(runes) == 0 {
		b.WriteString(breaker)
	}
	return b.String()
}
