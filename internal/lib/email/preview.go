package email

// PreviewData holds sample values for every template, keyed by template
// name and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"FullName": "Ivan Petrov",
		"Login":    "ipetrov",
	},
}
