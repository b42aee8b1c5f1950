package format

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows what Render emits, including its utility classes.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").
		Matching(regexp.MustCompile(`^[a-z0-9 -]+$`)).
		OnElements("div", "h3", "p", "ul", "li")
	return p
}()

// Sanitize strips anything from markup that Render would not produce itself,
// such as scripts or event handlers smuggled in through the reply text.
// Use it whenever the backend is not trusted.
func Sanitize(markup string) string {
	return policy.Sanitize(markup)
}
