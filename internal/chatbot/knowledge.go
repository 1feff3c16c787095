// Package chatbot answers program questions from a fixed FAQ.
package chatbot

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FAQEntry is one question/answer pair of the knowledge base.
type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// KnowledgeBase is the chatbot's only source of truth.
type KnowledgeBase struct {
	ProgramName string     `yaml:"program_name"`
	Facts       []string   `yaml:"facts"`
	FAQ         []FAQEntry `yaml:"faq"`
	Fallback    string     `yaml:"fallback"`
}

// LoadKnowledgeBase reads the YAML file at path.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(raw, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	if kb.Fallback == "" {
		kb.Fallback = "desculpe, não tenho essa informação, entre em contato pelo formulário do site"
	}
	return &kb, nil
}

// SystemPrompt renders the instruction that pins the model to the
// knowledge base.
func (kb *KnowledgeBase) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("Você é o assistente do programa ")
	if kb.ProgramName != "" {
		b.WriteString(kb.ProgramName)
	} else {
		b.WriteString("de mentoria")
	}
	b.WriteString(".\n")
	b.WriteString("Responda em português, de forma curta e cordial, usando SOMENTE as informações abaixo.\n")
	b.WriteString(fmt.Sprintf("Se a resposta não estiver nas informações, responda exatamente: %q\n\n", kb.Fallback))

	if len(kb.Facts) > 0 {
		b.WriteString("Fatos do programa:\n")
		for _, fact := range kb.Facts {
			b.WriteString("- ")
			b.WriteString(fact)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(kb.FAQ) > 0 {
		b.WriteString("Perguntas frequentes:\n")
		for _, entry := range kb.FAQ {
			b.WriteString("P: ")
			b.WriteString(entry.Question)
			b.WriteString("\nR: ")
			b.WriteString(entry.Answer)
			b.WriteString("\n")
		}
	}

	return b.String()
}
