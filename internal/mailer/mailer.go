package mailer

import "embed"

const (
	FROM_NAME = "Giornale dei Lavori"
	MAX_RETRY = 3

	LOG_VALIDATED_TEMPLATE = "log_validated.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any) (int, error)
}
