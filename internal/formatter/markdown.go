package formatter

import "strings"

// RenderMarkdown converts the small markup subset the backend emits in
// analysis commentary into plain terminal text. Only three constructs
// appear in practice and only those are handled:
//
//	"### Heading"  -> "Heading" on its own line
//	"**bold**"     -> "bold" (markers stripped)
//	"* item"       -> "  - item"
//
// Consecutive blank lines collapse to one. Unknown markup passes
// through untouched.
func RenderMarkdown(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")

	var out []string
	blank := false
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimRight(line, " \t")

		switch {
		case strings.HasPrefix(line, "### "):
			line = strings.TrimPrefix(line, "### ")
		case strings.HasPrefix(line, "* "):
			line = "  - " + strings.TrimPrefix(line, "* ")
		}

		line = stripBold(line)

		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

// stripBold removes paired ** markers, leaving unpaired ones alone.
func stripBold(line string) string {
	var b strings.Builder
	for {
		start := strings.Index(line, "**")
		if start == -1 {
			break
		}
		end := strings.Index(line[start+2:], "**")
		if end == -1 {
			break
		}
		b.WriteString(line[:start])
		b.WriteString(line[start+2 : start+2+end])
		line = line[start+2+end+2:]
	}
	b.WriteString(line)
	return b.String()
}
