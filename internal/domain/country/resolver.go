// Package country maps free-text country names from league data to flag codes.
package country

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is returned when no rule matches.
const Unknown = "un"

// Rule resolves a name to a code, or reports no match.
type Rule interface {
	Name() string
	Resolve(raw string) (string, bool)
}

// Resolver applies rules in order and falls back to Unknown.
type Resolver struct {
	rules []Rule
}

func NewResolver(rules ...Rule) *Resolver {
	return &Resolver{rules: rules}
}

var defaultResolver = NewResolver(
	ExactRule(nameCodes),
	NormalizedRule(nameCodes),
	AliasRule(aliasCodes),
)

// Default is the resolver built from the static tables.
func Default() *Resolver {
	return defaultResolver
}

// Code resolves with the default resolver.
func Code(name string) string {
	return defaultResolver.Resolve(name)
}

func (r *Resolver) Resolve(name string) string {
	code, _ := r.ResolveWithRule(name)
	return code
}

// ResolveWithRule also returns the name of the rule that matched, or
// "fallback".
func (r *Resolver) ResolveWithRule(name string) (string, string) {
	if r == nil {
		return Unknown, "fallback"
	}
	for _, rule := range r.rules {
		if code, ok := rule.Resolve(name); ok && code != "" {
			return code, rule.Name()
		}
	}
	return Unknown, "fallback"
}

type exactRule struct {
	table map[string]string
}

// ExactRule matches the name verbatim.
func ExactRule(table map[string]string) Rule {
	return exactRule{table: table}
}

func (exactRule) Name() string { return "exact" }

func (r exactRule) Resolve(raw string) (string, bool) {
	code, ok := r.table[raw]
	return code, ok
}

type normalizedRule struct {
	table map[string]string
}

// NormalizedRule matches after Normalize is applied to both sides.
func NormalizedRule(table map[string]string) Rule {
	normalized := make(map[string]string, len(table))
	for name, code := range table {
		normalized[Normalize(name)] = code
	}
	return normalizedRule{table: normalized}
}

func (normalizedRule) Name() string { return "normalized" }

func (r normalizedRule) Resolve(raw string) (string, bool) {
	key := Normalize(raw)
	if key == "" {
		return "", false
	}
	code, ok := r.table[key]
	return code, ok
}

type alias struct {
	needle string
	code   string
}

type aliasRule struct {
	aliases []alias
}

// AliasRule matches when the normalized name contains an alias. Longer
// aliases are tried first so "south korea" wins over "korea".
func AliasRule(table map[string]string) Rule {
	aliases := make([]alias, 0, len(table))
	for needle, code := range table {
		needle = Normalize(needle)
		if needle == "" {
			continue
		}
		aliases = append(aliases, alias{needle: needle, code: code})
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].needle) != len(aliases[j].needle) {
			return len(aliases[i].needle) > len(aliases[j].needle)
		}
		return aliases[i].needle < aliases[j].needle
	})
	return aliasRule{aliases: aliases}
}

func (aliasRule) Name() string { return "alias" }

func (r aliasRule) Resolve(raw string) (string, bool) {
	key := Normalize(raw)
	if key == "" {
		return "", false
	}
	padded := " " + key + " "
	for _, a := range r.aliases {
		if strings.Contains(padded, " "+a.needle+" ") || (len(a.needle) > 3 && strings.Contains(key, a.needle)) {
			return a.code, true
		}
	}
	return "", false
}

var punctuation = strings.NewReplacer(
	".", " ",
	"'", " ",
	"’", " ",
	"-", " ",
	"&", " and ",
	",", " ",
	"(", " ",
	")", " ",
	"/", " ",
)

// Normalize folds case, strips diacritics and punctuation, and collapses
// whitespace. "Côte d'Ivoire" becomes "cote d ivoire".
func Normalize(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, raw)
	if err != nil {
		stripped = raw
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(punctuation.Replace(folded)), " ")
}

// FlagURL builds the CDN url for a code. Unknown yields "".
func FlagURL(baseURL, code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Unknown {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/w40/" + code + ".png"
}

// ValidCode reports whether code looks like a flag code this package emits.
func ValidCode(code string) bool {
	if len(code) < 2 || len(code) > 6 {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && r != '-' {
			return false
		}
	}
	return true
}
