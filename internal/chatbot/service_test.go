package chatbot

import (
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestBuildContentsMapsRoles(t *testing.T) {
	contents := buildContents("qual o custo?", []Turn{
		{Role: "user", Content: "oi"},
		{Role: "assistant", Content: "olá, posso ajudar?"},
		{Role: "model", Content: "claro"},
	})
	if len(contents) != 4 {
		t.Fatalf("len = %d, want 4", len(contents))
	}

	wantRoles := []genai.Role{genai.RoleUser, genai.RoleModel, genai.RoleModel, genai.RoleUser}
	for i, want := range wantRoles {
		if contents[i].Role != string(want) {
			t.Fatalf("contents[%d].Role = %q, want %q", i, contents[i].Role, want)
		}
	}
	if contents[3].Parts[0].Text != "qual o custo?" {
		t.Fatalf("last content = %q, want the visitor message", contents[3].Parts[0].Text)
	}
}

func TestBuildContentsCapsAndClipsHistory(t *testing.T) {
	long := strings.Repeat("a", maxMessageLen+200)
	history := make([]Turn, 0, maxHistoryTurn+2)
	for i := 0; i < maxHistoryTurn+2; i++ {
		history = append(history, Turn{Role: "user", Content: long})
	}

	contents := buildContents("pergunta", history)
	if len(contents) != maxHistoryTurn+1 {
		t.Fatalf("len = %d, want %d", len(contents), maxHistoryTurn+1)
	}
	if got := len([]rune(contents[0].Parts[0].Text)); got != maxMessageLen {
		t.Fatalf("turn length = %d, want clipped to %d", got, maxMessageLen)
	}
}

func TestBuildContentsSkipsBlankTurns(t *testing.T) {
	contents := buildContents("pergunta", []Turn{
		{Role: "user", Content: "   "},
		{Role: "assistant", Content: ""},
	})
	if len(contents) != 1 {
		t.Fatalf("len = %d, want only the visitor message", len(contents))
	}
}
