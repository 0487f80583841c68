package schema

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Nr is the identity of an order or shipment row. It holds either a plain
// integer ("14") or a composite text identity ("14-0"). Two Nr values are
// the same row when they compare equal with ==.
type Nr struct {
	raw     string
	num     int
	numeric bool
}

// IntNr returns the numeric identity n.
func IntNr(n int) Nr {
	return Nr{raw: strconv.Itoa(n), num: n, numeric: true}
}

// ParseNr converts source text into an identity. Text that is a whole
// integer becomes numeric, anything else keeps its trimmed text form.
func ParseNr(s string) Nr {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return IntNr(n)
	}
	return Nr{raw: s}
}

func (n Nr) String() string { return n.raw }

// IsZero reports whether the identity is empty.
func (n Nr) IsZero() bool { return n == Nr{} }

// IsNumeric reports whether n is a plain integer identity.
func (n Nr) IsNumeric() bool { return n.numeric }

// Int returns the integer value of a numeric identity.
func (n Nr) Int() (int, bool) { return n.num, n.numeric }

// LeadingInt returns the integer formed by the leading digits of n
// ("14-0" yields 14). The checklist of a composite shipment row is the
// checklist of its leading order number.
func (n Nr) LeadingInt() (int, bool) {
	if n.numeric {
		return n.num, true
	}
	return leadingInt(n.raw)
}

// leadingInt parses an optional sign followed by at least one digit.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompareNr orders identities by their leading integer so that "14-0"
// sorts between 14 and 15. Text without a leading integer counts as 0,
// and two such values compare lexicographically. Among equal leading
// integers the plain number comes first, then composite suffixes are
// compared segment by segment.
func CompareNr(a, b Nr) int {
	ai, aok := a.LeadingInt()
	bi, bok := b.LeadingInt()
	if !aok && !bok {
		return strings.Compare(a.raw, b.raw)
	}
	if c := cmp.Compare(ai, bi); c != 0 {
		return c
	}
	if a.numeric != b.numeric {
		if a.numeric {
			return -1
		}
		return 1
	}
	return compareSegments(a.raw, b.raw)
}

func compareSegments(a, b string) int {
	as := strings.Split(a, "-")
	bs := strings.Split(b, "-")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(an, bn)
		} else {
			c = strings.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

// MarshalJSON writes numeric identities as JSON numbers and composite
// identities as strings.
func (n Nr) MarshalJSON() ([]byte, error) {
	if n.numeric {
		return []byte(strconv.Itoa(n.num)), nil
	}
	return json.Marshal(n.raw)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (n *Nr) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseNr(s)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("nr must be an integer or a string: %w", err)
	}
	*n = IntNr(i)
	return nil
}
