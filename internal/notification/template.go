package notification

import (
	"bytes"
	"html/template"
)

// SubjectPrefix is prepended to the category in every email subject.
const SubjectPrefix = "Notification: "

// emailTmpl is the HTML alternative part of every outgoing email.
// {{.Subject}} and {{.Body}} are auto-escaped by html/template.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;
     font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation"
         style="background-color:#f4f4f5;padding:32px 16px;">
    <tr>
      <td align="center">
        <table width="560" cellpadding="0" cellspacing="0" role="presentation"
               style="max-width:560px;width:100%;">
          <tr>
            <td style="background-color:#111827;padding:20px 32px;border-radius:10px 10px 0 0;">
              <span style="font-size:18px;font-weight:700;color:#ffffff;">Fanout</span>
              <span style="float:right;font-size:11px;color:#9ca3af;letter-spacing:0.4px;">{{.Subject}}</span>
            </td>
          </tr>
          <tr>
            <td style="background-color:#ffffff;padding:28px 32px;">
              <div style="font-size:14px;line-height:1.7;color:#374151;
                          white-space:pre-wrap;word-break:break-word;">{{.Body}}</div>
            </td>
          </tr>
          <tr>
            <td style="background-color:#f9fafb;padding:16px 32px;
                       border-top:1px solid #e5e7eb;border-radius:0 0 10px 10px;">
              <p style="margin:0;font-size:12px;color:#9ca3af;">
                You are receiving this because you subscribed to these updates.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

// buildSubject returns the email subject for a message category.
func buildSubject(category string) string {
	return SubjectPrefix + category
}

// buildEmailHTML renders the HTML email template with the given subject and body.
func buildEmailHTML(subject, body string) (string, error) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, struct{ Subject, Body string }{subject, body})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
