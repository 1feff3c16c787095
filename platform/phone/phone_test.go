package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"national mobile", "(11) 91234-5678", "+5511912345678"},
		{"already e164", "+5511912345678", "+5511912345678"},
		{"international", "+31 20 123 4567", "+31201234567"},
		{"unparseable kept", "0000", "0000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
