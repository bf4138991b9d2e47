package jd

import (
	"reflect"
	"testing"

	"cvforge/internal/cv"
)

// TestTokenize tests sanitization, short-token and stopword filtering.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "lowercase and strip punctuation",
			input:    "React, Next.js (TypeScript)",
			expected: []string{"react", "next.js", "typescript"},
		},
		{
			name:     "keeps token alphabet extras",
			input:    "C++ C# .NET front-end",
			expected: []string{"c++", "c#", ".net", "front-end"},
		},
		{
			name:     "drops single characters",
			input:    "r x go",
			expected: []string{"go"},
		},
		{
			name:     "drops stopwords in both languages",
			input:    "the and para con desarrollo with experience",
			expected: []string{"desarrollo", "experience"},
		},
		{
			name:     "accented letters are stripped",
			input:    "diseño",
			expected: []string{"diseo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tokenize(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestExtractKeywords verifies deduplication preserves first-occurrence
// order.
func TestExtractKeywords(t *testing.T) {
	result := ExtractKeywords("React react REACT, TypeScript react")
	expected := []string{"react", "typescript"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("ExtractKeywords = %v, want %v", result, expected)
	}
}

// TestMatchEmptyJD verifies the empty short-circuit: score 0 with empty
// non-nil lists, regardless of document content.
func TestMatchEmptyJD(t *testing.T) {
	for _, input := range []string{"", "   ", "the and para"} {
		result := Match(input, cv.InitialState().Data)
		if result.Score != 0 {
			t.Errorf("Match(%q): score = %d, want 0", input, result.Score)
		}
		if result.Matched == nil || len(result.Matched) != 0 {
			t.Errorf("Match(%q): matched = %v, want empty", input, result.Matched)
		}
		if result.Missing == nil || len(result.Missing) != 0 {
			t.Errorf("Match(%q): missing = %v, want empty", input, result.Missing)
		}
		if result.Keywords == nil || len(result.Keywords) != 0 {
			t.Errorf("Match(%q): keywords = %v, want empty", input, result.Keywords)
		}
	}
}

// TestMatchFullOverlap verifies a JD fully covered by the sample document
// scores 100.
func TestMatchFullOverlap(t *testing.T) {
	result := Match("React Next.js TypeScript", cv.InitialState().Data)

	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	expected := []string{"react", "next.js", "typescript"}
	if !reflect.DeepEqual(result.Matched, expected) {
		t.Errorf("matched = %v, want %v", result.Matched, expected)
	}
	if len(result.Missing) != 0 {
		t.Errorf("missing = %v, want empty", result.Missing)
	}
}

// TestMatchNoOverlap verifies keywords absent from the document all land
// in missing with score 0.
func TestMatchNoOverlap(t *testing.T) {
	result := Match("Kubernetes Erlang", cv.InitialState().Data)

	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if len(result.Matched) != 0 {
		t.Errorf("matched = %v, want empty", result.Matched)
	}
	expected := []string{"kubernetes", "erlang"}
	if !reflect.DeepEqual(result.Missing, expected) {
		t.Errorf("missing = %v, want %v", result.Missing, expected)
	}
}

// TestMatchScoreRounding verifies the percentage is rounded, not
// truncated.
func TestMatchScoreRounding(t *testing.T) {
	data := cv.CVData{
		Profile: cv.Profile{Skills: "React, GraphQL"},
	}

	// 2 of 3 matched: 66.67 rounds to 67.
	result := Match("React GraphQL Kubernetes", data)
	if result.Score != 67 {
		t.Errorf("score = %d, want 67", result.Score)
	}

	// 1 of 3 matched: 33.33 rounds to 33.
	result = Match("React Kubernetes Erlang", data)
	if result.Score != 33 {
		t.Errorf("score = %d, want 33", result.Score)
	}
}

// TestMatchDeduplicatesKeywords verifies repeated JD tokens count once.
func TestMatchDeduplicatesKeywords(t *testing.T) {
	data := cv.CVData{
		Profile: cv.Profile{Skills: "React"},
	}
	result := Match("React react Erlang", data)

	if len(result.Keywords) != 2 {
		t.Errorf("keywords = %v, want 2 entries", result.Keywords)
	}
	if result.Score != 50 {
		t.Errorf("score = %d, want 50", result.Score)
	}
}

// TestCorpusCoversAllSections verifies every matchable field reaches the
// corpus.
func TestCorpusCoversAllSections(t *testing.T) {
	data := cv.CVData{
		Profile: cv.Profile{
			Name:      "ignored-name",
			Title:     "title-token",
			Summary:   "summary-token",
			Target:    "target-token",
			Skills:    "skills-token",
			Languages: "languages-token",
		},
		Experience: []cv.Experience{
			{Company: "company-token", Role: "role-token", Bullets: []string{"bullet-token"}},
		},
		Education: []cv.Education{
			{School: "school-token", Degree: "degree-token", Details: "details-token"},
		},
		Projects: []cv.Project{
			{Name: "project-token", Role: "projrole-token", Description: "description-token", Technologies: "tech-token"},
		},
	}

	result := Match(
		"title-token summary-token target-token skills-token languages-token "+
			"company-token role-token bullet-token school-token degree-token "+
			"details-token project-token projrole-token description-token tech-token",
		data,
	)
	if result.Score != 100 {
		t.Errorf("score = %d, want 100 (missing: %v)", result.Score, result.Missing)
	}

	// The profile name is not part of the matchable corpus.
	result = Match("ignored-name", data)
	if result.Score != 0 {
		t.Errorf("score = %d, want 0 for profile name", result.Score)
	}
}
