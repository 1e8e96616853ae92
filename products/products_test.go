package products

import "testing"

func TestPrimitiveRegexQuotesMetacharacters(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"bamboo", "bamboo"},
		{"eco (refill)", `eco \(refill\)`},
		{"50% off", "50% off"},
		{"a.b*c", `a\.b\*c`},
	}
	for _, c := range cases {
		m := primitiveRegex(c.query)
		if got := m["$regex"]; got != c.want {
			t.Errorf("primitiveRegex(%q): pattern = %q, want %q", c.query, got, c.want)
		}
		if m["$options"] != "i" {
			t.Errorf("primitiveRegex(%q): expected case-insensitive match", c.query)
		}
	}
}
