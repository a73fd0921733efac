package email

// SendWelcomeEmail tells a newly created operator account its login.
func (c *Client) SendWelcomeEmail(to, fullName, login string) error {
	data := map[string]string{
		"FullName": fullName,
		"Login":    login,
	}

	return c.SendEmail(
		to,
		"Your camfleet account is ready",
		TemplateWelcome,
		data,
	)
}
