package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/yuvi31102000/job-notify/internal/config"
	"github.com/yuvi31102000/job-notify/internal/notify"
	"github.com/yuvi31102000/job-notify/internal/run"
	"github.com/yuvi31102000/job-notify/internal/scrape"
	"github.com/yuvi31102000/job-notify/internal/secrets"
)

const (
	exitOK     = 0
	exitConfig = 2
	exitFetch  = 3
	exitSend   = 4
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	dataDir := flag.String("data-dir", "", "directory for config.yml and the run lock (default: JOBNOTIFY_DATA_DIR or .)")
	flag.Parse()

	dir := *dataDir
	if dir == "" {
		dir = os.Getenv("JOBNOTIFY_DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[main] data dir: %v", err)
		return exitConfig
	}

	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		log.Printf("[main] config bootstrap failed: %v", err)
		return exitConfig
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[main] config load failed (%s): %v", cfgPath, err)
		return exitConfig
	}
	config.OverlayEnv(&cfg)

	// keychain verbs manage the app password and skip the pipeline entirely
	switch flag.Arg(0) {
	case "set-password":
		return setPassword(cfg)
	case "delete-password":
		return deletePassword(cfg)
	case "":
	default:
		log.Printf("[main] unknown command %q", flag.Arg(0))
		return exitConfig
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		log.Printf("[config] invalid:\n- %s", strings.Join(v.Errors, "\n- "))
		return exitConfig
	}

	if cfg.Mail.AppPassword == "" {
		pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
		if err != nil {
			log.Printf("[main] %v", err)
			return exitConfig
		}
		cfg.Mail.AppPassword = pw
	}

	// one run at a time; cron may fire again before a slow run finishes
	lock := flock.New(filepath.Join(dir, "jobnotify.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Printf("[main] run lock: %v", err)
		return exitConfig
	}
	if !locked {
		log.Printf("[main] another run is still in progress; skipping")
		return exitOK
	}
	defer lock.Unlock()

	p := &run.Pipeline{
		Fetcher: scrape.NewFetcher(),
		Sender: &notify.Mailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.Mail.From,
			To:       cfg.Mail.To,
			Password: cfg.Mail.AppPassword,
			Subject:  cfg.SMTP.Subject,
		},
	}

	res := p.Once(context.Background(), cfg)
	switch res.Outcome {
	case run.OutcomeSent, run.OutcomeNoRecentJobs:
		return exitOK
	case run.OutcomeFetchFailed:
		return exitFetch
	default:
		return exitSend
	}
}

func setPassword(cfg config.Config) int {
	if strings.TrimSpace(cfg.Mail.From) == "" {
		log.Printf("[main] mail.from must be set before storing a password")
		return exitConfig
	}

	// read from stdin, not argv: argv leaks into the process table
	fmt.Fprint(os.Stderr, "app password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Printf("[main] read password: %v", err)
		return exitConfig
	}

	acct := secrets.SMTPKeyringAccount(cfg)
	if err := secrets.SetSMTPPassword(acct, strings.TrimSpace(line)); err != nil {
		log.Printf("[main] store password: %v", err)
		return exitConfig
	}
	log.Printf("[main] password stored for %s", acct)
	return exitOK
}

func deletePassword(cfg config.Config) int {
	acct := secrets.SMTPKeyringAccount(cfg)
	if err := secrets.DeleteSMTPPassword(acct); err != nil {
		log.Printf("[main] delete password: %v", err)
		return exitConfig
	}
	log.Printf("[main] password removed for %s", acct)
	return exitOK
}
