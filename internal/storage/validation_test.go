package storage

import "testing"

func TestValidateUpload(t *testing.T) {
	const mb = 1024 * 1024

	cases := []struct {
		name     string
		filename string
		mimeType string
		size     int64
		wantOK   bool
	}{
		{"valid pdf", "programa.pdf", "application/pdf", 2 * mb, true},
		{"valid image", "foto.jpg", "image/jpeg", 500, true},
		{"mime with params", "planilha.csv", "text/csv; charset=utf-8", 1024, true},
		{"mime case insensitive", "foto.PNG", "IMAGE/PNG", 1024, true},
		{"zero size", "vazio.pdf", "application/pdf", 0, false},
		{"negative size", "negativo.pdf", "application/pdf", -1, false},
		{"exactly at limit", "grande.pdf", "application/pdf", 50 * mb, true},
		{"over limit", "enorme.pdf", "application/pdf", 50*mb + 1, false},
		{"disallowed mime", "binario.bin", "application/octet-stream", 1024, false},
		{"blocked exe", "virus.exe", "application/pdf", 1024, false},
		{"blocked exe uppercase", "VIRUS.EXE", "application/pdf", 1024, false},
		{"blocked shell script", "script.sh", "text/plain", 1024, false},
		{"blocked htaccess", ".htaccess", "text/plain", 1024, false},
		{"traversal dots", "..segredo.pdf", "application/pdf", 1024, false},
		{"traversal slash", "pasta/arquivo.pdf", "application/pdf", 1024, false},
		{"traversal backslash", `pasta\arquivo.pdf`, "application/pdf", 1024, false},
		{"nul byte", "arquivo\x00.pdf", "application/pdf", 1024, false},
		{"no extension", "LEIAME", "text/plain", 1024, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateUpload(tc.filename, tc.mimeType, tc.size)
			if got.Valid != tc.wantOK {
				t.Fatalf("ValidateUpload(%q, %q, %d) = %+v, want valid=%v",
					tc.filename, tc.mimeType, tc.size, got, tc.wantOK)
			}
			if !got.Valid && got.Error == "" {
				t.Fatal("invalid result must carry an error message")
			}
			if got.Valid && got.Error != "" {
				t.Fatalf("valid result must not carry an error: %q", got.Error)
			}
		})
	}
}

func TestValidateUploadOrderSizeFirst(t *testing.T) {
	// An oversized executable must report the size problem, the
	// checks short-circuit in order.
	got := ValidateUpload("virus.exe", "application/octet-stream", 100*1024*1024)
	if got.Valid {
		t.Fatal("expected invalid")
	}
	if got.Error != "arquivo deve ter entre 1 byte e 50 MB" {
		t.Fatalf("error = %q, want the size message", got.Error)
	}
}

func TestValidateUploadMimeMessageNamesType(t *testing.T) {
	got := ValidateUpload("binario.bin", "Application/Octet-Stream; charset=binary", 1024)
	if got.Valid {
		t.Fatal("expected invalid")
	}
	if got.Error != "tipo de arquivo não permitido: application/octet-stream" {
		t.Fatalf("error = %q, want the rejected type in the message", got.Error)
	}
}

func TestNormalizeContentType(t *testing.T) {
	if got := normalizeContentType("Text/CSV; charset=UTF-8"); got != "text/csv" {
		t.Fatalf("got %q", got)
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"a.PDF":     ".pdf",
		"a.tar.gz":  ".gz",
		".htaccess": ".htaccess",
		"semext":    "",
	}
	for in, want := range cases {
		if got := extensionOf(in); got != want {
			t.Fatalf("extensionOf(%q) = %q, want %q", in, got, want)
		}
	}
}
