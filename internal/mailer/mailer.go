package mailer

import "embed"

const (
	FromName               = "OpsDash"
	maxRetries             = 3
	OperatorInviteTemplate = "operator_invitation.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
