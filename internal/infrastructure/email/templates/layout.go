// Package templates provides email template layout and components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

type EmailLayoutProps struct {
	Preheader      string
	Content        string
	BrandName      string
	BrandColor     string
	FooterText     string
	CompanyAddress string
	PoweredByText  string
	PoweredByURL   string
}

type emailTemplateData struct {
	Preheader      string
	Content        template.HTML
	BrandName      string
	BrandColor     string
	FooterText     string
	CompanyAddress string
	PoweredByText  string
	PoweredByURL   string
}

var emailLayoutTemplate = template.Must(template.New("emailLayout").Parse(`<!doctype html>
<html lang="it">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <title>{{.BrandName}}</title>
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.4; background-color: #f4f5f6; margin: 0; padding: 0;">
    <span style="display: none; max-height: 0; overflow: hidden;">{{.Preheader}}</span>
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" bgcolor="#f4f5f6">
      <tr>
        <td align="center" style="padding: 24px 8px;">
          <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="600" style="max-width: 600px; background: #ffffff; border: 1px solid #eaebed; border-radius: 16px;">
            <tr>
              <td style="padding: 16px 24px; border-bottom: 4px solid {{.BrandColor}}; font-size: 20px; font-weight: bold; color: {{.BrandColor}};">{{.BrandName}}</td>
            </tr>
            <tr>
              <td style="padding: 24px;">{{.Content}}</td>
            </tr>
          </table>
          <p style="color: #9a9ea6; font-size: 14px; text-align: center;">
            {{.FooterText}}{{if .CompanyAddress}}<br>{{.CompanyAddress}}{{end}}
            {{if .PoweredByText}}<br>Powered by <a href="{{.PoweredByURL}}" style="color: #9a9ea6;">{{.PoweredByText}}</a>{{end}}
          </p>
        </td>
      </tr>
    </table>
  </body>
</html>`))

// GetEmailLayout wraps already-sanitised content in the branded shell.
func GetEmailLayout(props EmailLayoutProps) string {
	data := emailTemplateData{
		Preheader:      props.Preheader,
		Content:        template.HTML(props.Content),
		BrandName:      props.BrandName,
		BrandColor:     sanitizeColor(props.BrandColor, "#ef4444"),
		FooterText:     props.FooterText,
		CompanyAddress: props.CompanyAddress,
		PoweredByText:  props.PoweredByText,
		PoweredByURL:   props.PoweredByURL,
	}
	if data.BrandName == "" {
		data.BrandName = "sitecraft"
	}

	var buf bytes.Buffer
	if err := emailLayoutTemplate.Execute(&buf, data); err != nil {
		log.Printf("Error executing email layout template: %v", err)
		return "<html><body>Template execution error</body></html>"
	}
	return buf.String()
}
