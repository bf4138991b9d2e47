package cv

import "strings"

// SkillGroup is one parsed group from the profile skills field.
type SkillGroup struct {
	Group string   `json:"group"`
	Items []string `json:"items"`
}

// ParseSkillGroups parses the "Group: item, item; Group2: item" encoding
// of the profile skills field. Empty segments are dropped; a segment with
// no colon yields a group with no items.
func ParseSkillGroups(skills string) []SkillGroup {
	if skills == "" {
		return nil
	}
	var groups []SkillGroup
	for _, segment := range strings.Split(skills, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		group, itemsRaw, _ := strings.Cut(segment, ":")
		var items []string
		for _, item := range strings.Split(itemsRaw, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				items = append(items, item)
			}
		}
		group = strings.TrimSpace(group)
		if group != "" || len(items) > 0 {
			groups = append(groups, SkillGroup{Group: group, Items: items})
		}
	}
	return groups
}

// LanguageEntry is one parsed language from the profile languages field.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// ParseLanguages parses the pipe-delimited "Name — Level" encoding of the
// profile languages field.
func ParseLanguages(languages string) []LanguageEntry {
	if languages == "" {
		return nil
	}
	var entries []LanguageEntry
	for _, token := range strings.Split(languages, "|") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, level, _ := strings.Cut(token, "—")
		entries = append(entries, LanguageEntry{
			Name:  strings.TrimSpace(name),
			Level: strings.TrimSpace(level),
		})
	}
	return entries
}

// DateRange formats a start/end pair for display. A current position
// renders "Actualidad" in place of the end value.
func DateRange(start, end string, current bool) string {
	if current {
		end = "Actualidad"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " — " + end
	}
}

// PlainText flattens the document content into a single text blob:
// profile header fields, all skill items, every experience bullet,
// education details, and project descriptions.
func PlainText(data CVData) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(data.Profile.Name)
	add(data.Profile.Title)
	add(data.Profile.Summary)
	add(data.Profile.Target)

	var skills []string
	for _, group := range ParseSkillGroups(data.Profile.Skills) {
		skills = append(skills, group.Items...)
	}
	add(strings.Join(skills, " "))

	var bullets []string
	for _, exp := range data.Experience {
		bullets = append(bullets, exp.Bullets...)
	}
	add(strings.Join(bullets, " "))

	var details []string
	for _, edu := range data.Education {
		details = append(details, edu.Details)
	}
	add(strings.TrimSpace(strings.Join(details, " ")))

	var projects []string
	for _, proj := range data.Projects {
		projects = append(projects, strings.TrimSpace(proj.Name+" "+proj.Description+" "+proj.Technologies))
	}
	add(strings.TrimSpace(strings.Join(projects, " ")))

	add(data.Profile.Languages)

	return strings.Join(parts, " ")
}
