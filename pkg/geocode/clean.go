package geocode

import (
	"regexp"
	"strings"
)

// Address cleaning for municipal camera logs. The source lists mix street
// addresses, intersections ("Front St & Center St"), and descriptive
// labels ("Main Library: 449 Front St"); normalizing them first roughly
// doubles the provider match rate.

const streetTypes = `St|Street|Ave|Avenue|Rd|Road|Dr|Drive|Ln|Lane|Blvd|Boulevard|Pkwy|Parkway|Ct|Court|Pl|Place|Pond|Center`

var (
	intersectionRe = regexp.MustCompile(
		`(?i)(\b\w[\w\s]*? (?:` + streetTypes + `))\s*(?:&|and)\s*(\b\w[\w\s]*? (?:` + streetTypes + `))(?:,\s*(.*))?`)
	intersectionOfRe = regexp.MustCompile(`(?i)^intersection of\s*`)
	descriptiveRe    = regexp.MustCompile(`(?i)^[^,:]{0,60}?:\s*`)
	parentheticalRe  = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespaceRe     = regexp.MustCompile(`\s+`)

	abbreviations = []struct {
		re   *regexp.Regexp
		full string
	}{
		{regexp.MustCompile(`(?i)\bSt\b`), "Street"},
		{regexp.MustCompile(`(?i)\bAve\b`), "Avenue"},
		{regexp.MustCompile(`(?i)\bRd\b`), "Road"},
		{regexp.MustCompile(`(?i)\bDr\b`), "Drive"},
		{regexp.MustCompile(`(?i)\bLn\b`), "Lane"},
		{regexp.MustCompile(`(?i)\bBlvd\b`), "Boulevard"},
		{regexp.MustCompile(`(?i)\bPkwy\b`), "Parkway"},
		{regexp.MustCompile(`(?i)\bCt\b`), "Court"},
		{regexp.MustCompile(`(?i)\bPl\b`), "Place"},
	}
)

// CleanAddress normalizes an address string for geocoding. Returns ""
// when nothing usable remains; callers skip such rows.
func CleanAddress(address string) string {
	cleaned := strings.TrimSpace(address)
	if cleaned == "" {
		return ""
	}

	if m := intersectionRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1]) + " & " + strings.TrimSpace(m[2])
		if rest := strings.TrimSpace(m[3]); rest != "" {
			cleaned += ", " + rest
		}
		cleaned = intersectionOfRe.ReplaceAllString(cleaned, "")
	} else {
		cleaned = descriptiveRe.ReplaceAllString(cleaned, "")
		cleaned = parentheticalRe.ReplaceAllString(cleaned, " ")
	}

	for _, abbr := range abbreviations {
		cleaned = abbr.re.ReplaceAllString(cleaned, abbr.full)
	}

	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), ",")
	return strings.TrimSpace(cleaned)
}
