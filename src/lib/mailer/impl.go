package mailer

import (
	"castbook/src/lib"
	awslib "castbook/src/lib/aws"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// NewMailerMessage dispatches a notification email via SES, or via plain SMTP
// when MAILER_DRIVER=smtp (local development). Callers treat failures as
// non-fatal: notifications never roll back the state change that produced them.
func NewMailerMessage(input *lib.SendMailInput) error {
	driver := os.Getenv("MAILER_DRIVER")
	if driver == "smtp" {
		return lib.SendMail(input)
	}
	bodyContent := &sestypes.Content{Data: aws.String(input.Body)}
	body := &sestypes.Body{Text: bodyContent}
	if input.Html {
		body = &sestypes.Body{Html: bodyContent}
	}
	return awslib.SESSendMessage(
		aws.String(input.From),
		&sestypes.Destination{
			ToAddresses: input.To,
			CcAddresses: input.Cc,
		},
		&sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(input.Subject)},
			Body:    body,
		},
	)
}
