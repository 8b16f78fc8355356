package cleaner

import (
	"regexp"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^<>]*>`)
	extraSpacePattern  = regexp.MustCompile(`\s+`)
	specialCharPattern = regexp.MustCompile(`[^\w\s]`)
	punctuationPattern = regexp.MustCompile(`[!-/:-@\[-` + "`" + `{-~]`)
	urlCleanPattern    = regexp.MustCompile(`https?://[A-Za-z0-9$\-_@.&+!*(),%]+`)
	emailCleanPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// emoji ranges: emoticons, symbols and pictographs, transport, flags,
	// dingbats, enclosed characters
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{24C2}-\x{1F251}]+`)
)

// valueReplacements normalize common value variants (yes/no, gender,
// country and contact-method synonyms)
var valueReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\byes\b|\by\b|\btrue\b|\b1\b`), "yes"},
	{regexp.MustCompile(`(?i)\bno\b|\bn\b|\bfalse\b|\b0\b`), "no"},
	{regexp.MustCompile(`(?i)\bmale\b|\bm\b`), "male"},
	{regexp.MustCompile(`(?i)\bfemale\b|\bf\b`), "female"},
	{regexp.MustCompile(`(?i)\busa\b|\bunited states\b|\bus\b`), "united states"},
	{regexp.MustCompile(`(?i)\buk\b|\bunited kingdom\b|\bbritain\b`), "united kingdom"},
	{regexp.MustCompile(`(?i)\bemail\b|\be-mail\b|\bemail address\b`), "email"},
	{regexp.MustCompile(`(?i)\bphone\b|\btelephone\b|\btel\b|\bmobile\b`), "phone"},
}

var abbreviationReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bdr\b`), "doctor"},
	{regexp.MustCompile(`(?i)\bmr\b`), "mister"},
	{regexp.MustCompile(`(?i)\bmrs\b`), "missus"},
	{regexp.MustCompile(`(?i)\bms\b`), "miss"},
	{regexp.MustCompile(`(?i)\bprof\b`), "professor"},
	{regexp.MustCompile(`(?i)\bst\b`), "street"},
	{regexp.MustCompile(`(?i)\bave\b`), "avenue"},
	{regexp.MustCompile(`(?i)\brd\b`), "road"},
	{regexp.MustCompile(`(?i)\bblvd\b`), "boulevard"},
}

// cleanText is stage 6: trims, optionally lowercases and strips HTML, emoji,
// special characters and punctuation, collapses whitespace, and applies the
// value-normalization dictionaries.
func (p *Pipeline) cleanText(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Text
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeString {
			continue
		}
		for i, cell := range col.Cells {
			s, ok := cell.Text()
			if !ok {
				continue
			}
			col.Cells[i] = dataset.String(cleanTextValue(s, cfg))
		}
	}
	return ds
}

func cleanTextValue(s string, cfg domain.TextOptions) string {
	s = strings.TrimSpace(s)

	if cfg.RemoveHTMLTags {
		s = htmlTagPattern.ReplaceAllString(s, "")
	}
	if cfg.RemoveEmojis {
		s = emojiPattern.ReplaceAllString(s, "")
	}
	if cfg.NormalizeCase {
		s = strings.ToLower(s)
	}
	if cfg.RemoveSpecialChars {
		s = specialCharPattern.ReplaceAllString(s, "")
	}
	if cfg.RemoveExtraSpaces {
		s = extraSpacePattern.ReplaceAllString(s, " ")
	}
	if cfg.RemovePunctuation {
		s = punctuationPattern.ReplaceAllString(s, "")
	}
	if cfg.StandardizeValues {
		for _, r := range valueReplacements {
			s = r.pattern.ReplaceAllString(s, r.replacement)
		}
	}
	if cfg.AdvancedStandardization {
		s = urlCleanPattern.ReplaceAllString(s, "")
		s = emailCleanPattern.ReplaceAllString(s, "")
		for _, r := range abbreviationReplacements {
			s = r.pattern.ReplaceAllString(s, r.replacement)
		}
	}
	return s
}
