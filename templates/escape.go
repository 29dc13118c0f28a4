package templates

import (
	"strings"

	"github.com/a-h/templ"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters of s so it can be
// placed in element text or a quoted attribute
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escaped renders API-supplied text with EscapeHTML. templ's own escaper
// writes &#39; for apostrophes, and the dashboard keeps &#039;.
func escaped(s string) templ.Component {
	return templ.Raw(EscapeHTML(s))
}
