package renderer

import (
	"html"
	"strings"
)

// markdownEscaper backslash-escapes inline markdown syntax and folds line
// breaks, so user text cannot open a link, an emphasis or a new block.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`!`, `\!`,
	`~`, `\~`,
	`|`, `\|`,
	`#`, `\#`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// Escape makes user supplied text safe to embed in markdown rendered by HTML,
// which lets raw HTML through: markdown syntax is escaped, then HTML.
func Escape(s string) string { return html.EscapeString(markdownEscaper.Replace(s)) }
