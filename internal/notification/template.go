package notification

import (
	"fmt"
	"html/template"
	"strings"
)

var leadAlertTemplate = template.Must(template.New("lead_alert").Parse(`
<h2>Novo lead recebido</h2>
<p><strong>Nome:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Telefone:</strong> {{.Phone}}</p>{{end}}
{{if .Message}}<p><strong>Mensagem:</strong> {{.Message}}</p>{{end}}
{{if .Source}}<p><strong>Origem:</strong> {{.Source}}</p>{{end}}
<p><a href="{{.AdminURL}}">Abrir no painel</a></p>
`))

type leadAlertData struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	Source   string
	AdminURL string
}

func renderLeadAlert(data leadAlertData) (subject, htmlBody, textBody string, err error) {
	var b strings.Builder
	if err := leadAlertTemplate.Execute(&b, data); err != nil {
		return "", "", "", fmt.Errorf("render lead alert: %w", err)
	}

	subject = fmt.Sprintf("Novo lead: %s", data.Name)
	textBody = fmt.Sprintf("Novo lead recebido\n\nNome: %s\nEmail: %s\nTelefone: %s\nMensagem: %s\n\nPainel: %s\n",
		data.Name, data.Email, data.Phone, data.Message, data.AdminURL)
	return subject, b.String(), textBody, nil
}
