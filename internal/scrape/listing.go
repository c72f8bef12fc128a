package scrape

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yuvi31102000/job-notify/internal/domain"
)

// TimesJobs structural signatures. The search page is server-rendered, so one
// selector set covers every listing on it.
const (
	listingSelector = "li.clearfix.job-bx.wht-shd-bx"
	postedSelector  = "span.sim-posted"
	companySelector = ".joblist-comp-name"
	linkSelector    = "header h2 a"
	skillsSelector  = ".srp-skills"
)

// Listing is one job posting fragment on the search page.
type Listing struct {
	sel *goquery.Selection
}

// Listings parses the fetched page and returns every job container found.
// A page without the expected markup (site redesign, block page) yields an
// empty slice, not an error.
func Listings(body string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var out []Listing
	doc.Find(listingSelector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Listing{sel: s})
	})
	return out, nil
}

// Recent reports whether the posting's "posted" marker says it went up within
// the last few days. TimesJobs phrases fresh postings as "Posted few days
// ago"; exact dates and larger units ("30 days ago") count as stale. A
// listing with no marker at all is treated as stale rather than killing the
// run.
func (l Listing) Recent() bool {
	posted := l.sel.Find(postedSelector)
	if posted.Length() == 0 {
		log.Printf("[scrape] listing has no posted marker; treating as stale")
		return false
	}
	text := strings.TrimSpace(posted.Text())
	return text != "" && strings.Contains(strings.ToLower(text), "few")
}

// Details extracts the structured record from a listing already known to be
// recent. Title, company, and link must be present; skills are optional.
func (l Listing) Details() (domain.Job, error) {
	title := cleanText(l.sel.Find("h2").First().Text())
	if title == "" {
		return domain.Job{}, errors.New("listing has no title")
	}

	company := cleanText(l.sel.Find(companySelector).First().Text())
	if company == "" {
		return domain.Job{}, errors.New("listing has no company name")
	}

	link, _ := l.sel.Find(linkSelector).First().Attr("href")
	link = strings.TrimSpace(link)
	if link == "" {
		return domain.Job{}, errors.New("listing has no apply link")
	}

	return domain.Job{
		Title:   title,
		Company: company,
		Skills:  l.skills(),
		Link:    link,
	}, nil
}

// skills splits the skills block on line breaks; TimesJobs renders one tag
// per line inside .srp-skills. Empty segments are dropped and tags are
// lower-cased.
func (l Listing) skills() []string {
	block := l.sel.Find(skillsSelector)
	if block.Length() == 0 {
		log.Printf("[scrape] listing has no skills block")
		return nil
	}

	var tags []string
	for _, part := range strings.Split(block.Text(), "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, strings.ToLower(part))
	}
	return tags
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
