// Package digest renders the collected job records into one HTML mail body.
package digest

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuvi31102000/job-notify/internal/domain"
)

// tmpl is the alert mail layout: banner, one card per job, footer. Contextual
// escaping keeps a hostile job title or company name from injecting markup
// into the mail.
var tmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<html>
  <body style="font-family: Calibri, sans-serif; background-color: #f1f5f9; padding: 20px;">
    <div style="max-width: 650px; margin: auto; background-color: #ffffff; border-radius: 10px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
      <h2 style="color:#1a73e8; text-align: center;">&#128202; Data Analyst Job Opportunities</h2>
      <p style="color: #333333; font-size: 15px;">Hello &#128075;, here are the latest data analyst job openings curated just for you:</p>
      <hr style="border: none; border-top: 1px solid #e2e8f0; margin: 20px 0;"/>
{{range .}}      <div style="background-color: #f9fafb; padding: 20px; margin-bottom: 15px; border-radius: 8px; border: 1px solid #e2e8f0;">
        <h3 style="margin: 0 0 10px 0; color: #0d47a1; font-weight: bold;">{{.Title}}</h3>
        <p style="margin: 5px 0;">{{.Company}}</p>
        <p style="margin: 5px 0;"><strong>Skills:</strong> {{join .Skills ", "}}</p>
        <p style="margin: 5px 0;"><a href="{{.Link}}" style="color: #1a73e8;" target="_blank">Apply Now</a></p>
      </div>
{{end}}      <p style="font-size: 12px; color: #6b7280; text-align: center; margin-top: 30px;">
        This is an automated notification from your TimesJobs Notifier.<br>
        Stay curious. Keep growing! &#128640;
      </p>
    </div>
  </body>
</html>`))

// Compose renders the digest body for a non-empty set of jobs. Composing for
// zero records is a caller bug.
func Compose(jobs []domain.Job) (string, error) {
	if len(jobs) == 0 {
		return "", errors.New("compose: no jobs")
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, jobs); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}
