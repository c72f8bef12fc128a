package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/yuvi31102000/job-notify/internal/config"
)

const (
	// “Service” groups this app's secrets in the OS keychain.
	KeyringService = "jobnotify"
)

// GetSMTPPassword looks up the sender's app password in the OS keychain.
// The PASSWORD env var takes precedence and is resolved by the caller.
func GetSMTPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	return "", errors.New("SMTP app password not found (set PASSWORD or run jobnotify set-password)")
}

func SetSMTPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteSMTPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func SMTPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"jobnotify:smtp:%s@%s",
		cfg.Mail.From,
		cfg.SMTP.Host,
	)
}
