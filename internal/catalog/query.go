package catalog

import (
	"net/url"
	"stationd/internal/models"
	"strconv"
	"strings"
)

// EscapeQueryValue percent-encodes every byte outside the unreserved set,
// including the characters the catalog treats as reserved and commas, so a
// tag list joins escaped entries with literal commas. Spaces become %20.
func EscapeQueryValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildSearchQuery renders the query string (without the leading '?') for
// /json/stations/search. reverse is omitted for random ordering.
func BuildSearchQuery(params models.SearchParams, rowcount, offset int) string {
	order := params.Order
	if order == "" {
		order = models.OrderVotes
	}

	var b strings.Builder
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(rowcount))
	b.WriteString("&order=")
	b.WriteString(EscapeQueryValue(string(order)))
	b.WriteString("&offset=")
	b.WriteString(strconv.Itoa(offset))

	if text := strings.TrimSpace(params.Text); text != "" {
		b.WriteString("&name=")
		b.WriteString(EscapeQueryValue(text))
	}

	if tags := cleanTags(params.Tags); len(tags) > 0 {
		escaped := make([]string, len(tags))
		for i, t := range tags {
			escaped[i] = EscapeQueryValue(t)
		}
		b.WriteString("&tagList=")
		b.WriteString(strings.Join(escaped, ","))
		b.WriteString("&tagExact=false")
	}

	if cc := strings.TrimSpace(params.CountryCode); cc != "" {
		b.WriteString("&countrycode=")
		b.WriteString(EscapeQueryValue(cc))
	}

	if order != models.OrderRandom {
		b.WriteString("&reverse=")
		b.WriteString(strconv.FormatBool(params.Reverse))
	}

	return b.String()
}

// cleanTags drops blanks and case-sensitive duplicates.
func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
