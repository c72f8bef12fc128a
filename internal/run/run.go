// Package run wires the pipeline stages together for one pass.
package run

import (
	"context"
	"errors"
	"log"

	"github.com/yuvi31102000/job-notify/internal/config"
	"github.com/yuvi31102000/job-notify/internal/digest"
	"github.com/yuvi31102000/job-notify/internal/domain"
	"github.com/yuvi31102000/job-notify/internal/notify"
	"github.com/yuvi31102000/job-notify/internal/scrape"
)

// Outcome is the single terminal state of one run.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeNoRecentJobs
	OutcomeFetchFailed
	OutcomeSendFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeNoRecentJobs:
		return "no_recent_jobs"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeSendFailed:
		return "send_failed"
	}
	return "unknown"
}

// Result carries the outcome plus how many records made it into the digest.
type Result struct {
	Outcome Outcome
	Jobs    int
}

type Pipeline struct {
	Fetcher *scrape.Fetcher
	Sender  notify.Sender
}

// Once performs a single fetch-filter-notify pass: fetch the search page,
// keep the recent listings, extract their details, and mail the digest if
// anything survived. A listing that fails extraction is skipped, not fatal;
// a mail failure is logged and reflected in the outcome but never panics the
// process.
func (p *Pipeline) Once(ctx context.Context, cfg config.Config) Result {
	body, err := p.Fetcher.Fetch(ctx, cfg.Search.URL)
	if err != nil {
		var serr *scrape.StatusError
		if errors.As(err, &serr) {
			log.Printf("[run] failed to retrieve jobs: status %d", serr.Code)
		} else {
			log.Printf("[run] fetch failed: %v", err)
		}
		return Result{Outcome: OutcomeFetchFailed}
	}

	listings, err := scrape.Listings(body)
	if err != nil {
		log.Printf("[run] parse failed: %v", err)
		return Result{Outcome: OutcomeFetchFailed}
	}

	var jobs []domain.Job
	for i, l := range listings {
		if !l.Recent() {
			continue
		}
		job, derr := l.Details()
		if derr != nil {
			// one broken listing must not sink the rest
			log.Printf("[run] skipping listing %d: %v", i, derr)
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		log.Printf("[run] no recent jobs found")
		return Result{Outcome: OutcomeNoRecentJobs}
	}

	htmlBody, err := digest.Compose(jobs)
	if err != nil {
		log.Printf("[run] compose failed: %v", err)
		return Result{Outcome: OutcomeSendFailed, Jobs: len(jobs)}
	}

	if err := p.Sender.Send(ctx, htmlBody); err != nil {
		switch {
		case errors.Is(err, notify.ErrConnect):
			log.Printf("[run] failed to connect to the mail server; check your network or smtp settings: %v", err)
		case errors.Is(err, notify.ErrAuth):
			log.Printf("[run] failed to authenticate; check mail.from and the app password: %v", err)
		default:
			log.Printf("[run] smtp error: %v", err)
		}
		return Result{Outcome: OutcomeSendFailed, Jobs: len(jobs)}
	}

	log.Printf("[run] email sent with %d job(s)", len(jobs))
	return Result{Outcome: OutcomeSent, Jobs: len(jobs)}
}
