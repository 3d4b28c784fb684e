package mail

type NewsletterWelcomeData struct {
	SiteName       string
	SiteURL        string
	Email          string
	UnsubscribeURL string
}

type ContactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ReplyAddress lets the owner answer the visitor directly.
func (d ContactData) ReplyAddress() string { return d.Email }

type UnsubscribePageData struct {
	SiteName string
	SiteURL  string
	Email    string
	OK       bool
}
