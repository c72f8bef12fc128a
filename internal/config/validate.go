package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg plus everything wrong
// with it. Validation happens before the pipeline runs; the pipeline itself
// assumes a finished config.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Search.URL = strings.TrimSpace(out.Search.URL)
	out.SMTP.Host = strings.TrimSpace(out.SMTP.Host)
	out.SMTP.Subject = strings.TrimSpace(out.SMTP.Subject)
	out.Mail.From = strings.TrimSpace(out.Mail.From)
	out.Mail.To = strings.TrimSpace(out.Mail.To)

	if out.Search.URL == "" {
		res.addErr("search.url is required")
	} else if u, err := url.Parse(out.Search.URL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("search.url is not an absolute URL: %q", out.Search.URL)
	}

	if out.SMTP.Host == "" {
		res.addErr("smtp.host is required")
	}
	if out.SMTP.Port <= 0 || out.SMTP.Port > 65535 {
		res.addErr("smtp.port must be 1..65535")
	}
	if out.SMTP.Subject == "" {
		res.addWarn("smtp.subject is empty; the alert mail will have no subject line")
	}

	checkAddr := func(field, val string) {
		if val == "" {
			res.addErr("%s is required (set it in config.yml or via env)", field)
			return
		}
		if _, err := mail.ParseAddress(val); err != nil {
			res.addErr("%s does not look like an email address: %q", field, val)
		}
	}
	checkAddr("mail.from", out.Mail.From)
	checkAddr("mail.to", out.Mail.To)

	if out.Mail.AppPassword == "" {
		res.addWarn("no app password in env; will fall back to the OS keychain")
	}

	return out, res
}
