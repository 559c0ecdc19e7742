package security

import (
	"regexp"
	"strings"
)

// maxURLLength is the length beyond which a URL is treated as an obfuscation
// attempt.
const maxURLLength = 250

var urlPattern = regexp.MustCompile(`https?://\S+`)

// LinkScan summarises the http(s) URLs found in a block of text.
type LinkScan struct {
	Found      int
	Suspicious []string
}

// Clean reports whether the scan flagged nothing.
func (s LinkScan) Clean() bool {
	return len(s.Suspicious) == 0
}

// DetectPhishingLinks extracts http(s) URLs from text and flags the ones
// matching simple phishing heuristics: an embedded credential separator (@),
// more than one scheme separator (//), or excessive length.
func DetectPhishingLinks(text string) LinkScan {
	urls := urlPattern.FindAllString(text, -1)
	scan := LinkScan{Found: len(urls)}
	for _, u := range urls {
		if strings.Contains(u, "@") || strings.Count(u, "//") > 1 || len(u) > maxURLLength {
			scan.Suspicious = append(scan.Suspicious, u)
		}
	}
	return scan
}
