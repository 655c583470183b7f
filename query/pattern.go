// Package query builds the case-insensitive substring filters used by every
// medicines search. User text is always escaped, so it can never contribute
// pattern operators to a filter.
package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// whitespaceRun matches between any two words of a flexible pattern,
// including no whitespace at all.
const whitespaceRun = `\s*`

// Pattern is an escaped regular expression source that is valid both for the
// MongoDB $regex operator and for Go's regexp package.
type Pattern struct {
	source string
}

// Literal matches text verbatim.
func Literal(text string) Pattern {
	return Pattern{source: regexp.QuoteMeta(text)}
}

// Flexible matches text verbatim except that any run of whitespace in text
// matches any run of whitespace in the target.
func Flexible(text string) Pattern {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return Pattern{source: strings.Join(words, whitespaceRun)}
}

func (p Pattern) String() string {
	return p.source
}

// Regex renders the pattern for the mongo driver.
func (p Pattern) Regex() primitive.Regex {
	return primitive.Regex{Pattern: p.source, Options: "i"}
}

// Compile renders the pattern for in-process matching. It fails when the
// text was not valid UTF-8.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + p.source)
}
