// Package field resolves logical fields out of schema-less rows.
//
// Column names vary between uploads ("Amount", "txn_amount", "Txn Amount"),
// so every lookup goes through an ordered alias list: the first alias that is
// present with a non-empty value wins. Coercion is deliberately loose; a cell
// that cannot be parsed is treated as absent and never aborts a computation.
package field

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/wonny/pulseboard/backend/internal/contracts"
)

// Kind selects the coercion applied by Resolve.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindDate
	KindBool
)

// Index is a case-insensitive view over one record.
// Build it once per row and run every lookup for that row against it.
type Index struct {
	values map[string]any
	caser  cases.Caser
}

// NewIndex normalises the record's keys.
// When two keys collide after normalisation the first non-empty value in
// sorted key order is kept, so the result does not depend on map order.
func NewIndex(rec contracts.Record) Index {
	ix := Index{
		values: make(map[string]any, len(rec)),
		caser:  cases.Fold(),
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		nk := ix.normalize(k)
		v := rec[k]
		if existing, ok := ix.values[nk]; ok && !isEmpty(existing) {
			continue
		}
		ix.values[nk] = v
	}

	return ix
}

// NormalizeKey applies the same key normalisation NewIndex uses.
func NormalizeKey(s string) string {
	return normalizeWith(cases.Fold(), s)
}

func (ix Index) normalize(s string) string {
	return normalizeWith(ix.caser, s)
}

func normalizeWith(c cases.Caser, s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = c.String(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}

// Lookup returns the raw value of the first alias that is present and non-empty.
func (ix Index) Lookup(aliases []string) (any, bool) {
	for _, a := range aliases {
		v, ok := ix.values[ix.normalize(a)]
		if ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any alias carries a non-empty value.
func (ix Index) Has(aliases []string) bool {
	_, ok := ix.Lookup(aliases)
	return ok
}

// Number resolves a finite float. ok is false when the field is absent or unparseable.
func (ix Index) Number(aliases []string) (float64, bool) {
	v, ok := ix.Lookup(aliases)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

// String resolves a trimmed string, "" when absent.
func (ix Index) String(aliases []string) string {
	v, ok := ix.Lookup(aliases)
	if !ok {
		return ""
	}
	return toString(v)
}

// Date resolves a UTC timestamp. ok is false when absent or unparseable.
func (ix Index) Date(aliases []string) (time.Time, bool) {
	v, ok := ix.Lookup(aliases)
	if !ok {
		return time.Time{}, false
	}
	return toDate(v)
}

// Bool resolves a boolean; absent or unrecognised values are false.
func (ix Index) Bool(aliases []string) bool {
	v, _ := ix.BoolOK(aliases)
	return v
}

// BoolOK is Bool plus whether the flag was present at all.
func (ix Index) BoolOK(aliases []string) (bool, bool) {
	v, ok := ix.Lookup(aliases)
	if !ok {
		return false, false
	}
	return toBool(v), true
}

// Flag resolves an explicit yes/no marker. Unlike Bool it distinguishes a
// recognised "no" (false, true) from an absent or unrecognised value (false, false).
func (ix Index) Flag(aliases []string) (value bool, ok bool) {
	v, found := ix.Lookup(aliases)
	if !found {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "t":
			return true, true
		case "false", "0", "no", "n", "f":
			return false, true
		}
		return false, false
	default:
		n, isNum := toNumber(v)
		if !isNum || (n != 0 && n != 1) {
			return false, false
		}
		return n == 1, true
	}
}

// Resolve is the single-call form: it indexes rec and coerces the first
// matching alias to kind. Absent values yield 0, "", nil (date) or false.
func Resolve(rec contracts.Record, aliases []string, kind Kind) any {
	ix := NewIndex(rec)
	switch kind {
	case KindNumber:
		n, _ := ix.Number(aliases)
		return n
	case KindString:
		return ix.String(aliases)
	case KindDate:
		if t, ok := ix.Date(aliases); ok {
			return t
		}
		return nil
	case KindBool:
		return ix.Bool(aliases)
	default:
		return nil
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case json.Number:
		return strings.TrimSpace(string(t)) == ""
	default:
		return false
	}
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint64:
		f = float64(t)
	case uint32:
		f = float64(t)
	case json.Number:
		return ParseNumber(string(t))
	case string:
		return ParseNumber(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseNumber parses a loosely formatted amount such as "$1,200.50",
// "EUR 99", "(250)" or "12%". Non-finite results are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		if r == ',' || r == '%' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	// ISO currency codes around the number ("USD", "eur")
	s = strings.TrimFunc(s, unicode.IsLetter)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		parsed, err := dateparse.ParseIn(strings.TrimSpace(t), time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	default:
		return time.Time{}, false
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "t":
			return true
		}
		return false
	default:
		if n, ok := toNumber(v); ok {
			return n == 1
		}
		return false
	}
}

// MatchHeader returns the first alias (in priority order) present among
// headers, together with the header spelling that matched it.
func MatchHeader(headers []string, aliases []string) (alias, header string, ok bool) {
	caser := cases.Fold()
	seen := make(map[string]string, len(headers))
	for _, h := range headers {
		nh := normalizeWith(caser, h)
		if _, dup := seen[nh]; !dup {
			seen[nh] = h
		}
	}
	for _, a := range aliases {
		if h, found := seen[normalizeWith(caser, a)]; found {
			return a, h, true
		}
	}
	return "", "", false
}
