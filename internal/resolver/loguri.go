// Where: internal/resolver/loguri.go
// What: Log URI rendering from a configurable template.
// Why: Some accounts prefix cluster logs by namespace; the default matches the EMR console layout.
package resolver

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// LogURIData is the template input for the cluster LogUri.
type LogURIData struct {
	LogsBucket        string
	ClusterName       string
	ProfileNamespace  string
	ProfileName       string
	ConfigurationName string
}

func parseLogURITemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("log_uri").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse log uri template: %w", err)
	}
	return tmpl, nil
}

func renderLogURI(tmpl *template.Template, data LogURIData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
