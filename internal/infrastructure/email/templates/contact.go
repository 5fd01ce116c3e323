package templates

import "fmt"

// ContactEmailProps feeds both contact form emails.
type ContactEmailProps struct {
	SiteName       string
	BrandColor     string
	SiteURL        string
	VisitorName    string
	VisitorEmail   string
	VisitorPhone   string
	Message        string
	SuccessMessage string
	Address        string
}

// GetContactNotificationContent is sent to the organization.
func GetContactNotificationContent(p ContactEmailProps) string {
	content := GetParagraph(fmt.Sprintf("Nuovo messaggio ricevuto dal modulo contatti di %s.", p.SiteName)) +
		GetDetails([]DetailRow{
			{Label: "Nome", Value: p.VisitorName},
			{Label: "Email", Value: p.VisitorEmail},
			{Label: "Telefono", Value: p.VisitorPhone},
			{Label: "Messaggio", Value: p.Message},
		})
	if p.VisitorEmail != "" {
		content += GetButton(ButtonProps{Text: "Rispondi", URL: "mailto:" + p.VisitorEmail, BackgroundColor: p.BrandColor})
	}
	return content
}

// GetContactConfirmationContent is sent back to the visitor.
func GetContactConfirmationContent(p ContactEmailProps) string {
	content := GetParagraph(fmt.Sprintf("Ciao %s,", p.VisitorName)) +
		GetParagraph(p.SuccessMessage) +
		GetDetails([]DetailRow{{Label: "Il tuo messaggio", Value: p.Message}})
	if p.SiteURL != "" {
		content += GetButton(ButtonProps{Text: "Visita il sito", URL: p.SiteURL, BackgroundColor: p.BrandColor})
	}
	return content
}
