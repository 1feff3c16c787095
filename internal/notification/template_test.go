package notification

import (
	"strings"
	"testing"

	"github.com/hibiken/asynq"
)

func TestRenderLeadAlert(t *testing.T) {
	subject, htmlBody, textBody, err := renderLeadAlert(leadAlertData{
		Name:     "Maria Silva",
		Email:    "maria@example.com",
		Phone:    "+5511912345678",
		Message:  "quero participar",
		Source:   "site",
		AdminURL: "https://painel.example/admin/leads/abc",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if subject != "Novo lead: Maria Silva" {
		t.Fatalf("subject = %q", subject)
	}
	// html/template escapes "+" to its entity.
	for _, want := range []string{"Maria Silva", "maria@example.com", "&#43;5511912345678", "https://painel.example/admin/leads/abc"} {
		if !strings.Contains(htmlBody, want) {
			t.Fatalf("html missing %q", want)
		}
	}
	if !strings.Contains(textBody, "maria@example.com") {
		t.Fatalf("text missing email: %s", textBody)
	}
	if !strings.Contains(textBody, "+5511912345678") {
		t.Fatalf("text missing phone: %s", textBody)
	}
}

func TestRenderLeadAlertEscapesHTML(t *testing.T) {
	_, htmlBody, _, err := renderLeadAlert(leadAlertData{
		Name:  `<b>injected</b>`,
		Email: "a@b.com",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(htmlBody, "<b>injected</b>") {
		t.Fatal("name not escaped")
	}
}

func TestDeliverTaskRoundTrip(t *testing.T) {
	task, err := NewDeliverTask(DeliverPayload{OutboxID: "0b9faf8a-9a5a-4a42-8bb6-52e64c8e1a11"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskDeliver {
		t.Fatalf("type = %q", task.Type())
	}

	payload, err := ParseDeliverPayload(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if payload.OutboxID != "0b9faf8a-9a5a-4a42-8bb6-52e64c8e1a11" {
		t.Fatalf("outbox id = %q", payload.OutboxID)
	}
}

func TestParseDeliverPayloadRejectsGarbage(t *testing.T) {
	if _, err := ParseDeliverPayload(asynq.NewTask(TaskDeliver, []byte("nope"))); err == nil {
		t.Fatal("expected error")
	}
}
