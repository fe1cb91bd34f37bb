package itemcode

import (
	"fmt"
	"regexp"
	"strings"
)

// prefixPattern matches a segment prefix attached to a rendered code, e.g.
// "S2-1.4". Prefix numbering starts at 2: the first table never carries one.
var prefixPattern = regexp.MustCompile(`^S(\d+)-`)

// Prefixed renders code with a segment prefix, "S2-1.4". An empty prefix
// renders the bare code.
func Prefixed(prefix string, c Code) string {
	if prefix == "" {
		return c.String()
	}
	return prefix + "-" + c.String()
}

// PrefixFor builds the prefix string for the n-th accepted numbering restart.
func PrefixFor(n int) string {
	return fmt.Sprintf("S%d", n)
}

// SplitPrefix splits a rendered code into its segment prefix (possibly
// empty) and the bare code text. It does not validate the code portion.
func SplitPrefix(s string) (prefix, bare string) {
	m := prefixPattern.FindString(s)
	if m == "" {
		return "", s
	}
	return strings.TrimSuffix(m, "-"), s[len(m):]
}

// embeddedPattern finds a code-shaped token in the middle of running text,
// bounded by whitespace so that decimal quantities ("5,50") and section
// references inside words are not picked up.
var embeddedPattern = regexp.MustCompile(`(^|\s)(\d{1,3}(?:\.\d{1,3}){1,4})(\s|$)`)

// FindEmbedded scans free text for an embedded item code and returns the
// code together with the byte offset where its token starts. Used to split
// cells where two records were merged by the source layer. Returns ok=false
// when no plausible code is present.
func FindEmbedded(text string) (c Code, offset int, ok bool) {
	for _, loc := range embeddedPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[4], loc[5]
		code, valid := Parse(text[start:end])
		if !valid {
			continue
		}
		return code, start, true
	}
	return Code{}, 0, false
}
