package interpret

import (
	"regexp"
	"strings"
)

// expenseSignals are patterns that mark a message as recording a spend.
// They are checked before query signals and short-circuit: a message that
// matches any of these is never treated as a query, even if it also
// contains query phrasing.
var expenseSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)spent\s+\d+`),
	regexp.MustCompile(`(?i)paid\s+\d+`),
	regexp.MustCompile(`(?i)bought\s+\d+`),
	regexp.MustCompile(`(?i)purchased\s+\d+`),
	regexp.MustCompile(`₹\s*\d+`),
	regexp.MustCompile(`(?i)\d+\s*(rupee|rs|inr)`),
	regexp.MustCompile(`(?i)add\s+\d+`),
	regexp.MustCompile(`(?i)record\s+\d+`),
}

// querySignals are interrogative or summary phrasings that mark a message
// as asking about expense history.
var querySignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)how much`),
	regexp.MustCompile(`(?i)what did`),
	regexp.MustCompile(`(?i)show me`),
	regexp.MustCompile(`(?i)list my`),
	regexp.MustCompile(`(?i)total spent`),
	regexp.MustCompile(`(?i)summary`),
	regexp.MustCompile(`(?i)report`),
	regexp.MustCompile(`(?i)expenses`),
	regexp.MustCompile(`(?i)spending`),
	regexp.MustCompile(`(?i)my total`),
	regexp.MustCompile(`(?i)total expenditure`),
	regexp.MustCompile(`(?i)what's my`),
	regexp.MustCompile(`(?i)what is my`),
	regexp.MustCompile(`(?i)tell me my`),
	regexp.MustCompile(`(?i)give me`),
	regexp.MustCompile(`(?i)show my`),
	regexp.MustCompile(`(?i)list expenses`),
}

// IsQuery is the pattern-based expense-vs-query decision. It is a local
// fallback and validation layer; the pipeline's primary classification is
// model-backed. Expense signals win over query signals.
func IsQuery(text string) bool {
	for _, p := range expenseSignals {
		if p.MatchString(text) {
			return false
		}
	}

	lower := strings.ToLower(text)
	for _, p := range querySignals {
		if p.MatchString(lower) {
			return true
		}
	}

	return false
}
