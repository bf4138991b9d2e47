// Package jd scores how well a job description's vocabulary is covered
// by the CV content. Matching is exact-string over sanitized lowercase
// tokens; there is no stemming or fuzzy comparison, so "react" and
// "reactjs" are distinct keywords.
package jd

import (
	"math"
	"regexp"
	"strings"

	"cvforge/internal/cv"
)

// sanitizeRegex strips every character outside the token alphabet.
// Letters outside ASCII are dropped, matching the builder's behavior.
var sanitizeRegex = regexp.MustCompile(`[^a-z0-9+#.\-]`)

// MatchResult is the outcome of comparing a job description against the
// CV corpus. Matched and Missing preserve the keyword order of the job
// description; Keywords is the full deduplicated JD keyword sequence.
type MatchResult struct {
	Score    int      `json:"score"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	Keywords []string `json:"keywords"`
}

func sanitize(token string) string {
	return sanitizeRegex.ReplaceAllString(strings.ToLower(token), "")
}

// Tokenize splits text on whitespace, sanitizes each token, and drops
// single-character tokens and stopwords.
func Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		token := sanitize(field)
		if len(token) <= 1 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// UniqueTokens deduplicates tokens preserving first-occurrence order.
func UniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	return unique
}

// ExtractKeywords returns the deduplicated keyword sequence for a text.
func ExtractKeywords(text string) []string {
	return UniqueTokens(Tokenize(text))
}

// Corpus concatenates the matchable text of a document: profile title,
// summary, target, skills and languages, then company/role/bullets per
// experience, school/degree/details per education, and name/role/
// description/technologies per project.
func Corpus(data cv.CVData) string {
	parts := []string{
		data.Profile.Title,
		data.Profile.Summary,
		data.Profile.Target,
		data.Profile.Skills,
		data.Profile.Languages,
	}
	for _, exp := range data.Experience {
		parts = append(parts, exp.Company, exp.Role, strings.Join(exp.Bullets, " "))
	}
	for _, edu := range data.Education {
		parts = append(parts, edu.School, edu.Degree, edu.Details)
	}
	for _, proj := range data.Projects {
		parts = append(parts, proj.Name, proj.Role, proj.Description, proj.Technologies)
	}
	return strings.Join(parts, " ")
}

// Match classifies each JD keyword as matched or missing against the CV
// keyword set and scores the overlap as a rounded percentage. An empty
// JD keyword set short-circuits to score 0 with empty lists.
func Match(jdText string, data cv.CVData) MatchResult {
	jdKeywords := ExtractKeywords(jdText)
	if len(jdKeywords) == 0 {
		return MatchResult{
			Matched:  []string{},
			Missing:  []string{},
			Keywords: []string{},
		}
	}

	cvKeywords := make(map[string]struct{})
	for _, token := range Tokenize(Corpus(data)) {
		cvKeywords[token] = struct{}{}
	}

	matched := make([]string, 0, len(jdKeywords))
	missing := make([]string, 0)
	for _, keyword := range jdKeywords {
		if _, ok := cvKeywords[keyword]; ok {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	score := int(math.Round(float64(len(matched)) / float64(len(jdKeywords)) * 100))

	return MatchResult{
		Score:    score,
		Matched:  matched,
		Missing:  missing,
		Keywords: jdKeywords,
	}
}
