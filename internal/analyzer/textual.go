package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	urlPattern      = regexp.MustCompile(`https?://[A-Za-z0-9$\-_@.&+!*(),%]+`)
	phonePattern    = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
	numericPattern  = regexp.MustCompile(`\d+`)
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
	repeatedPattern = regexp.MustCompile(`(.)\1{3,}`)
	nonASCIIPattern = regexp.MustCompile(`[^\x00-\x7F]`)
	specialPattern  = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// textColumns selects string columns likely to hold free text: average length
// above 20 characters or unique ratio above 0.7.
func textColumns(ds *dataset.Dataset) []*dataset.Column {
	var cols []*dataset.Column
	for _, col := range stringColumns(ds) {
		texts := col.Strings()
		if len(texts) == 0 {
			continue
		}
		var totalLen int
		for _, s := range texts {
			totalLen += len(s)
		}
		avgLen := float64(totalLen) / float64(len(texts))
		uniqueRatio := float64(col.UniqueCount()) / float64(len(texts))
		if avgLen > 20 || uniqueRatio > 0.7 {
			cols = append(cols, col)
		}
	}
	return cols
}

func textStatistics(ds *dataset.Dataset) map[string]any {
	cols := textColumns(ds)
	if len(cols) == 0 {
		return map[string]any{"message": "No text columns found for analysis"}
	}

	stats := map[string]any{}
	for _, col := range cols {
		texts := col.Strings()
		if len(texts) == 0 {
			continue
		}

		var lengths, wordCounts, charCounts []float64
		uniqueChars := map[rune]struct{}{}
		for _, s := range texts {
			lengths = append(lengths, float64(len(s)))
			wordCounts = append(wordCounts, float64(len(strings.Fields(s))))
			charCounts = append(charCounts, float64(len(strings.ReplaceAll(s, " ", ""))))
			for _, r := range s {
				uniqueChars[r] = struct{}{}
			}
		}

		minLen, maxLen := minMax(lengths)
		minWords, maxWords := minMax(wordCounts)
		meanChars := mean(charCounts)
		meanWords := mean(wordCounts)
		avgWordLen := 0.0
		if meanWords > 0 {
			avgWordLen = meanChars / meanWords
		}

		stats[col.Name] = map[string]any{
			"text_length_stats": map[string]any{
				"mean_length":   mean(lengths),
				"median_length": quantile(lengths, 0.5),
				"min_length":    int(minLen),
				"max_length":    int(maxLen),
				"std_length":    finiteOr(stdDev(lengths), 0),
			},
			"word_count_stats": map[string]any{
				"mean_words":   meanWords,
				"median_words": quantile(wordCounts, 0.5),
				"min_words":    int(minWords),
				"max_words":    int(maxWords),
			},
			"character_analysis": map[string]any{
				"mean_chars":         meanChars,
				"total_unique_chars": len(uniqueChars),
				"avg_word_length":    avgWordLen,
			},
			"text_diversity": map[string]any{
				"unique_texts":     col.UniqueCount(),
				"uniqueness_ratio": float64(col.UniqueCount()) / float64(len(texts)),
			},
		}
	}
	return stats
}

func textPatterns(ds *dataset.Dataset) map[string]any {
	patterns := map[string]any{}
	for _, col := range textColumns(ds) {
		texts := col.Strings()
		if len(texts) == 0 {
			continue
		}

		var emails, urls, phones, numerics, uppers, lowers int
		for _, s := range texts {
			if emailPattern.MatchString(s) {
				emails++
			}
			if urlPattern.MatchString(s) {
				urls++
			}
			if phonePattern.MatchString(s) {
				phones++
			}
			if numericPattern.MatchString(s) {
				numerics++
			}
			if isUpperText(s) {
				uppers++
			}
			if isLowerText(s) {
				lowers++
			}
		}

		n := float64(len(texts))
		patterns[col.Name] = map[string]any{
			"email_patterns":       emails,
			"url_patterns":         urls,
			"phone_patterns":       phones,
			"numeric_patterns":     numerics,
			"uppercase_ratio":      float64(uppers) / n,
			"lowercase_ratio":      float64(lowers) / n,
			"mixed_case_ratio":     float64(len(texts)-uppers-lowers) / n,
			"punctuation_analysis": punctuationCounts(texts),
			"common_prefixes":      commonAffixes(texts, 3, true),
			"common_suffixes":      commonAffixes(texts, 3, false),
		}
	}
	if len(patterns) == 0 {
		return map[string]any{"message": "No text columns found for analysis"}
	}
	return patterns
}

// isUpperText mirrors str.isupper: has a cased character, none lowercase
func isUpperText(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isLowerText(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasCased = true
		}
	}
	return hasCased
}

func punctuationCounts(texts []string) map[string]int {
	all := strings.Join(texts, " ")
	return map[string]int{
		"periods":     strings.Count(all, "."),
		"commas":      strings.Count(all, ","),
		"exclamation": strings.Count(all, "!"),
		"question":    strings.Count(all, "?"),
		"quotes":      strings.Count(all, `"`) + strings.Count(all, "'"),
		"parentheses": strings.Count(all, "(") + strings.Count(all, ")"),
	}
}

// commonAffixes counts the 10 most frequent 3-character prefixes or suffixes
func commonAffixes(texts []string, length int, prefix bool) []map[string]any {
	counts := map[string]int{}
	for _, s := range texts {
		if len(s) < length {
			continue
		}
		var affix string
		if prefix {
			affix = strings.ToLower(s[:length])
		} else {
			affix = strings.ToLower(s[len(s)-length:])
		}
		counts[affix]++
	}

	type entry struct {
		affix string
		count int
	}
	var entries []entry
	for a, c := range counts {
		entries = append(entries, entry{a, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].affix < entries[j].affix
	})

	key := "prefix"
	if !prefix {
		key = "suffix"
	}
	var out []map[string]any
	for i, e := range entries {
		if i >= 10 {
			break
		}
		out = append(out, map[string]any{key: e.affix, "count": e.count})
	}
	return out
}

func vocabularyAnalysis(ds *dataset.Dataset) map[string]any {
	vocabulary := map[string]any{}
	for _, col := range textColumns(ds) {
		texts := col.Strings()
		if len(texts) == 0 {
			continue
		}

		allText := strings.ToLower(strings.Join(texts, " "))
		words := wordPattern.FindAllString(allText, -1)
		if len(words) == 0 {
			continue
		}

		freq := map[string]int{}
		for _, w := range words {
			freq[w]++
		}

		type wordCount struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		}
		var ranked []wordCount
		for w, c := range freq {
			ranked = append(ranked, wordCount{w, c})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Count != ranked[j].Count {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Word < ranked[j].Word
		})
		if len(ranked) > 20 {
			ranked = ranked[:20]
		}

		vocabulary[col.Name] = map[string]any{
			"total_words":              len(words),
			"unique_words":             len(freq),
			"vocabulary_richness":      float64(len(freq)) / float64(len(words)),
			"most_common_words":        ranked,
			"word_length_distribution": wordLengthDistribution(words),
			"language_indicators":      languageIndicators(words),
		}
	}
	if len(vocabulary) == 0 {
		return map[string]any{"message": "No text columns found for analysis"}
	}
	return vocabulary
}

func wordLengthDistribution(words []string) map[string]any {
	lengths := make([]float64, len(words))
	for i, w := range words {
		lengths[i] = float64(len(w))
	}
	minLen, maxLen := minMax(lengths)
	return map[string]any{
		"avg_word_length":    mean(lengths),
		"median_word_length": quantile(lengths, 0.5),
		"min_word_length":    int(minLen),
		"max_word_length":    int(maxLen),
	}
}

var englishIndicators = []string{"the", "and", "or", "is", "are", "was", "were", "have", "has", "had"}

func languageIndicators(words []string) map[string]any {
	wordSet := map[string]struct{}{}
	containsNumbers := false
	mixedCase := 0
	for _, w := range words {
		wordSet[w] = struct{}{}
		if !containsNumbers && isDigits(w) {
			containsNumbers = true
		}
		if hasMixedCase(w) {
			mixedCase++
		}
	}
	englishScore := 0
	for _, indicator := range englishIndicators {
		if _, ok := wordSet[indicator]; ok {
			englishScore++
		}
	}
	return map[string]any{
		"likely_english":           englishScore >= 3,
		"english_indicators_found": englishScore,
		"contains_numbers":         containsNumbers,
		"mixed_case_words":         mixedCase,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasMixedCase(s string) bool {
	hasUpper, hasLower := false, false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func textQuality(ds *dataset.Dataset) map[string]any {
	quality := map[string]any{}
	for _, col := range textColumns(ds) {
		texts := col.Strings()
		if len(texts) == 0 {
			continue
		}

		var encodingIssues, emptyOrWhitespace, veryShort, veryLong int
		var repeated, allCaps, noSpaces, specialHeavy int
		for _, s := range texts {
			if nonASCIIPattern.MatchString(s) {
				encodingIssues++
			}
			if strings.TrimSpace(s) == "" {
				emptyOrWhitespace++
			}
			if len(s) < 3 {
				veryShort++
			}
			if len(s) > 1000 {
				veryLong++
			}
			if repeatedPattern.MatchString(s) {
				repeated++
			}
			if isUpperText(s) {
				allCaps++
			}
			if !strings.Contains(s, " ") {
				noSpaces++
			}
			if float64(len(specialPattern.FindAllString(s, -1))) > float64(len(s))*0.3 {
				specialHeavy++
			}
		}

		quality[col.Name] = map[string]any{
			"encoding_issues":     encodingIssues,
			"empty_or_whitespace": emptyOrWhitespace,
			"very_short_texts":    veryShort,
			"very_long_texts":     veryLong,
			"repeated_characters": repeated,
			"all_caps":            allCaps,
			"no_spaces":           noSpaces,
			"special_char_heavy":  specialHeavy,
			"quality_score":       textQualityScore(len(texts), veryShort, veryLong, allCaps, noSpaces),
		}
	}
	if len(quality) == 0 {
		return map[string]any{"message": "No text columns found for analysis"}
	}
	return quality
}

// textQualityScore starts at 100 and subtracts weighted penalties for the
// fraction of problem texts.
func textQualityScore(n, veryShort, veryLong, allCaps, noSpaces int) float64 {
	score := 100.0
	fn := float64(n)
	score -= float64(veryShort) / fn * 20
	score -= float64(veryLong) / fn * 10
	score -= float64(allCaps) / fn * 15
	score -= float64(noSpaces) / fn * 25
	return math.Max(score, 0)
}
