package domain

import "testing"

func TestHoneypotTriggered(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \t\n", false},
		{"filled", "https://spam.example", true},
		{"single char", "x", true},
		{"padded value", "  bot  ", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HoneypotTriggered(tc.value); got != tc.want {
				t.Fatalf("HoneypotTriggered(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestNewSubmissionNormalizes(t *testing.T) {
	s := NewSubmission("  Maria Silva  ", " MARIA@Example.COM ", "(11) 91234-5678", "  olá  ", "site")

	if s.Name != "Maria Silva" {
		t.Fatalf("name = %q", s.Name)
	}
	if s.Email != "maria@example.com" {
		t.Fatalf("email = %q", s.Email)
	}
	if s.Phone != "+5511912345678" {
		t.Fatalf("phone = %q", s.Phone)
	}
	if s.Message != "olá" {
		t.Fatalf("message = %q", s.Message)
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusNew, StatusContacted, StatusEnrolled, StatusArchived} {
		if !ValidStatus(status) {
			t.Fatalf("%q should be valid", status)
		}
	}
	if ValidStatus("deleted") {
		t.Fatal("unknown status accepted")
	}
}

func TestListFilterNormalize(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{-3, 500, 1, 100},
		{2, 50, 2, 50},
	}

	for _, tc := range cases {
		f := ListFilter{Page: tc.page, PageSize: tc.size}
		f.Normalize()
		if f.Page != tc.wantPage || f.PageSize != tc.wantSize {
			t.Fatalf("Normalize(%d,%d) = (%d,%d), want (%d,%d)",
				tc.page, tc.size, f.Page, f.PageSize, tc.wantPage, tc.wantSize)
		}
	}
}
