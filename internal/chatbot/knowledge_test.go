package chatbot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleKB = `
program_name: "P.A.G.O."
facts:
  - "As mentorias acontecem quinzenalmente."
  - "A participação é gratuita."
faq:
  - question: "Como me inscrevo?"
    answer: "Pelo formulário do site."
fallback: "não sei responder"
`

func writeKB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write kb: %v", err)
	}
	return path
}

func TestLoadKnowledgeBase(t *testing.T) {
	kb, err := LoadKnowledgeBase(writeKB(t, sampleKB))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if kb.ProgramName != "P.A.G.O." {
		t.Fatalf("program name = %q", kb.ProgramName)
	}
	if len(kb.Facts) != 2 || len(kb.FAQ) != 1 {
		t.Fatalf("unexpected kb shape: %+v", kb)
	}
	if kb.Fallback != "não sei responder" {
		t.Fatalf("fallback = %q", kb.Fallback)
	}
}

func TestLoadKnowledgeBaseDefaultsFallback(t *testing.T) {
	kb, err := LoadKnowledgeBase(writeKB(t, "program_name: X"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if kb.Fallback == "" {
		t.Fatal("fallback must have a default")
	}
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
	if _, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSystemPromptContainsKnowledge(t *testing.T) {
	kb, err := LoadKnowledgeBase(writeKB(t, sampleKB))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	prompt := kb.SystemPrompt()
	for _, want := range []string{
		"P.A.G.O.",
		"As mentorias acontecem quinzenalmente.",
		"Como me inscrevo?",
		"Pelo formulário do site.",
		"não sei responder",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildContentsCapsHistory(t *testing.T) {
	history := make([]Turn, 10)
	for i := range history {
		history[i] = Turn{Role: "user", Content: strings.Repeat("x", 2000)}
	}

	contents := buildContents("pergunta", history)
	if len(contents) != maxHistoryTurn+1 {
		t.Fatalf("contents = %d, want %d", len(contents), maxHistoryTurn+1)
	}

	for _, content := range contents[:maxHistoryTurn] {
		if n := len([]rune(content.Parts[0].Text)); n > maxMessageLen {
			t.Fatalf("history turn not clipped: %d runes", n)
		}
	}
}

func TestBuildContentsSkipsEmptyTurns(t *testing.T) {
	contents := buildContents("oi", []Turn{{Role: "user", Content: "  "}})
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want only the message", len(contents))
	}
}
