package domain

// Job is one extracted posting. Immutable once built; lives only for the
// duration of a single run.
type Job struct {
	Title   string
	Company string
	Skills  []string // lower-cased tags, in page order
	Link    string
}
