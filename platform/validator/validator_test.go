package validator

import "testing"

type sampleSubmission struct {
	Name  string `validate:"required,min=2,max=255,person_name"`
	Email string `validate:"required,email,max=320"`
	Phone string `validate:"omitempty,max=30,phone_chars"`
}

func TestPersonNameRule(t *testing.T) {
	v := New()

	valid := []string{"Maria Silva", "José d'Ávila", "Anne-Marie", "Ângela"}
	for _, name := range valid {
		if err := v.Var(name, "person_name"); err != nil {
			t.Fatalf("expected %q to be a valid name: %v", name, err)
		}
	}

	invalid := []string{"Maria123", "nome@", "x<y>", "a;b"}
	for _, name := range invalid {
		if err := v.Var(name, "person_name"); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestPhoneCharsRule(t *testing.T) {
	v := New()

	valid := []string{"+55 (11) 91234-5678", "11 1234 5678", ""}
	for _, phone := range valid {
		if err := v.Var(phone, "phone_chars"); err != nil {
			t.Fatalf("expected %q to be valid phone chars: %v", phone, err)
		}
	}

	if err := v.Var("abc123", "phone_chars"); err == nil {
		t.Fatal("expected letters in phone to be rejected")
	}
}

func TestFirstViolationMessages(t *testing.T) {
	v := New()

	cases := []struct {
		name       string
		input      sampleSubmission
		wantField  string
		wantReason string
	}{
		{
			name:       "name too short",
			input:      sampleSubmission{Name: "A", Email: "a@b.com"},
			wantField:  "name",
			wantReason: "nome deve ter pelo menos 2 caracteres",
		},
		{
			name:       "invalid email",
			input:      sampleSubmission{Name: "Maria", Email: "not-an-email"},
			wantField:  "email",
			wantReason: "email inválido",
		},
		{
			name:       "phone with letters",
			input:      sampleSubmission{Name: "Maria", Email: "a@b.com", Phone: "call-me-maybe"},
			wantField:  "phone",
			wantReason: "telefone contém caracteres inválidos",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violation := FirstViolation(v.Struct(tc.input))
			if violation == nil {
				t.Fatal("expected a violation")
			}
			if violation.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", violation.Field, tc.wantField)
			}
			if violation.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", violation.Reason, tc.wantReason)
			}
		})
	}

	if FirstViolation(v.Struct(sampleSubmission{Name: "Maria", Email: "a@b.com"})) != nil {
		t.Fatal("expected no violation for valid input")
	}
}
