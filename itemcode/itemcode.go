package itemcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxDepth is the maximum number of dotted levels a code may have.
const MaxDepth = 5

// maxComponentDigits bounds each level; real planilhas never number past
// three digits, and longer groups indicate registration numbers, dates, or
// monetary values rather than item codes.
const maxComponentDigits = 3

// Code is a hierarchical item code: an ordered sequence of 1-5 small
// non-negative integers parsed from a dotted string such as "12.3.4".
// The zero value is the empty (absent) code.
type Code struct {
	parts []int
}

var codePattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){0,4}$`)

// registrationPattern matches dotted numeric groups shaped like Brazilian
// registration identifiers (CNPJ "12.345.678/0001-90" prefixes, process
// numbers), which survive OCR as "12.345.678"-style fragments. A code whose
// component widths follow the 2-3-3 (or longer) pattern is rejected.
var registrationPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}`)

// Parse parses a dotted item code string. It returns the zero Code and
// ok=false when the string is not a plausible item code: wrong shape, too
// deep, an over-wide component, or a registration-number lookalike.
func Parse(s string) (Code, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".") // trailing dot is common OCR residue
	if s == "" || !codePattern.MatchString(s) {
		return Code{}, false
	}
	if registrationPattern.MatchString(s) {
		return Code{}, false
	}

	fields := strings.Split(s, ".")
	if len(fields) > MaxDepth {
		return Code{}, false
	}
	parts := make([]int, len(fields))
	for i, f := range fields {
		if len(f) > maxComponentDigits {
			return Code{}, false
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return Code{}, false
		}
		parts[i] = n
	}
	return Code{parts: parts}, true
}

// MustParse parses s and panics when it is not a valid code. Intended for
// tests and literals.
func MustParse(s string) Code {
	c, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("itemcode: invalid code %q", s))
	}
	return c
}

// IsZero reports whether the code is absent (no components).
func (c Code) IsZero() bool {
	return len(c.parts) == 0
}

// Depth returns the number of dotted levels.
func (c Code) Depth() int {
	return len(c.parts)
}

// Component returns the i-th level (0-based). It panics when i is out of
// range, matching slice semantics.
func (c Code) Component(i int) int {
	return c.parts[i]
}

// Root returns the first component, or -1 for the zero code.
func (c Code) Root() int {
	if len(c.parts) == 0 {
		return -1
	}
	return c.parts[0]
}

// String renders the canonical dotted form. Segment prefixes are never part
// of the rendered code; parse(render(c)) always round-trips.
func (c Code) String() string {
	if len(c.parts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range c.parts {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// Compare orders codes lexicographically over their components. A shorter
// code that is a prefix of a longer one compares as smaller, so "1.2"
// sorts before "1.2.3" which sorts before "1.3".
func (c Code) Compare(other Code) int {
	n := len(c.parts)
	if len(other.parts) < n {
		n = len(other.parts)
	}
	for i := 0; i < n; i++ {
		switch {
		case c.parts[i] < other.parts[i]:
			return -1
		case c.parts[i] > other.parts[i]:
			return 1
		}
	}
	switch {
	case len(c.parts) < len(other.parts):
		return -1
	case len(c.parts) > len(other.parts):
		return 1
	}
	return 0
}

// Less reports whether c sorts strictly before other.
func (c Code) Less(other Code) bool {
	return c.Compare(other) < 0
}

// Equal reports component-wise equality.
func (c Code) Equal(other Code) bool {
	return c.Compare(other) == 0
}

// IsParentOf reports whether c is a strict ancestor of other ("1.2" is a
// parent of "1.2.3" and of "1.2.3.4").
func (c Code) IsParentOf(other Code) bool {
	if len(c.parts) == 0 || len(c.parts) >= len(other.parts) {
		return false
	}
	for i, p := range c.parts {
		if other.parts[i] != p {
			return false
		}
	}
	return true
}

// Parent returns the code one level up, or the zero code for a top-level
// code.
func (c Code) Parent() Code {
	if len(c.parts) <= 1 {
		return Code{}
	}
	parts := make([]int, len(c.parts)-1)
	copy(parts, c.parts[:len(c.parts)-1])
	return Code{parts: parts}
}

// Child returns the code extended by one level with component n.
func (c Code) Child(n int) Code {
	parts := make([]int, len(c.parts)+1)
	copy(parts, c.parts)
	parts[len(c.parts)] = n
	return Code{parts: parts}
}
