package kpi

import (
	"strings"
	"unicode"

	"github.com/wonny/pulseboard/backend/internal/field"
)

// Verdict is the outcome of a direction ladder.
type Verdict int

const (
	Unclassified Verdict = iota
	Positive             // inflow / on time
	Negative             // outflow / late
)

// Ladder classifies a row in strict priority order:
//  1. an explicit yes/no flag column
//  2. keywords in a free-text status column; the longest matching phrase
//     wins and a tie goes to the negative side
//  3. a numeric or date fallback
//
// The first rung that yields an answer wins; later rungs are never consulted.
// ⭐ SSOT: 방향 추론 우선순위는 여기서만
type Ladder struct {
	Flag          []string
	Status        []string
	PositiveWords []string
	NegativeWords []string
	Fallback      func(ix field.Index) Verdict
}

// Classify runs the ladder against one indexed row.
func (l Ladder) Classify(ix field.Index) Verdict {
	if v, ok := ix.Flag(l.Flag); ok {
		if v {
			return Positive
		}
		return Negative
	}

	if status := ix.String(l.Status); status != "" {
		text := keywordText(status)
		neg := longestMatch(text, l.NegativeWords)
		pos := longestMatch(text, l.PositiveWords)
		switch {
		case neg > 0 && neg >= pos:
			return Negative
		case pos > 0:
			return Positive
		}
	}

	if l.Fallback != nil {
		return l.Fallback(ix)
	}
	return Unclassified
}

// keywordText lowercases s and turns every non-alphanumeric run into one
// space, padded at both ends so keywords match on word boundaries.
func keywordText(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// containsAny matches whole words or phrases against keywordText output.
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, " "+w+" ") {
			return true
		}
	}
	return false
}

// longestMatch returns the length of the longest word or phrase found in
// keywordText output, or 0.
func longestMatch(text string, words []string) int {
	best := 0
	for _, w := range words {
		if len(w) > best && strings.Contains(text, " "+w+" ") {
			best = len(w)
		}
	}
	return best
}

// financeLadder decides inflow vs outflow. An amount with no usable flag or
// type keyword is classified by its sign: negative is outflow, anything else
// inflow.
var financeLadder = Ladder{
	Flag:   field.Finance.InflowFlag,
	Status: field.Finance.Type,
	PositiveWords: []string{
		"credit", "credits", "cr", "deposit", "deposits", "inflow", "income",
		"in", "received", "receipt", "sale", "sales", "revenue",
		"payment in", "payment received", "payments received", "incoming payment",
	},
	NegativeWords: []string{
		"debit", "debits", "dr", "withdrawal", "withdrawals", "outflow", "expense",
		"expenses", "out", "payment", "payments", "purchase", "fee", "fees", "transfer out",
		"payment sent", "payment out", "bill payment", "outgoing payment",
	},
	Fallback: func(ix field.Index) Verdict {
		amount, ok := ix.Number(field.Finance.Amount)
		if !ok {
			return Unclassified
		}
		if amount < 0 {
			return Negative
		}
		return Positive
	},
}

// supplyLadder decides on time vs late. Lifecycle statuses such as
// "delivered" say nothing about punctuality, so they fall through to the
// computed delay.
var supplyLadder = Ladder{
	Flag:   field.Supply.OnTimeFlag,
	Status: field.Supply.Status,
	PositiveWords: []string{
		"on time", "ontime", "early",
	},
	NegativeWords: []string{
		"late", "delayed", "delay", "overdue", "missed", "not on time", "backordered",
	},
	Fallback: func(ix field.Index) Verdict {
		delay, ok := delayDays(ix)
		if !ok {
			return Unclassified
		}
		if delay <= 0 {
			return Positive
		}
		return Negative
	},
}

// delayDays prefers an explicit delay column and otherwise diffs actual
// against promised delivery dates.
func delayDays(ix field.Index) (float64, bool) {
	if d, ok := ix.Number(field.Supply.DelayDays); ok {
		return d, true
	}
	actual, okA := ix.Date(field.Supply.ActualDate)
	promised, okP := ix.Date(field.Supply.PromisedDate)
	if !okA || !okP {
		return 0, false
	}
	return float64(actual.Sub(promised)) / float64(day), true
}
