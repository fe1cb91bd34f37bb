package model

// Attempt is the transient result of one extraction backend: the records it
// produced, its composite confidence, and a free-form debug trail. Only the
// winning attempt's records survive past the orchestrator; the attempt
// itself is retained in the audit trail.
type Attempt struct {
	Backend    string
	Records    []Record
	Confidence float64
	Debug      []string
}

// Note appends a line to the attempt's debug trail.
func (a *Attempt) Note(line string) {
	a.Debug = append(a.Debug, line)
}
