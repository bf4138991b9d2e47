package cv

import "encoding/json"

// RawState mirrors BuilderState with optional fields so that absent and
// present-but-empty values are distinguishable after JSON decoding. It is
// the input shape for Normalize: imports and rehydrated snapshots decode
// into RawState first, then pass through Normalize to become a fully
// shaped BuilderState.
type RawState struct {
	Data   *RawData `json:"data"`
	UI     *RawUI   `json:"ui"`
	JDText *string  `json:"jdText"`
}

// RawData mirrors CVData. A nil entry list means the field was absent
// (falls back to the sample list); a non-nil empty list stays empty.
type RawData struct {
	Profile    *RawProfile     `json:"profile"`
	Experience []RawExperience `json:"experience"`
	Education  []RawEducation  `json:"education"`
	Projects   []RawProject    `json:"projects"`
}

// RawProfile mirrors Profile with pointer fields: a present field
// overrides the default even when it is an empty string.
type RawProfile struct {
	Name      *string `json:"name"`
	Title     *string `json:"title"`
	Target    *string `json:"target"`
	Summary   *string `json:"summary"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Photo     *string `json:"photo"`
	Skills    *string `json:"skills"`
	Languages *string `json:"languages"`
}

// RawExperience mirrors Experience with optional fields.
type RawExperience struct {
	ID      *string  `json:"id"`
	Company *string  `json:"company"`
	Role    *string  `json:"role"`
	Start   *string  `json:"start"`
	End     *string  `json:"end"`
	Current *bool    `json:"current"`
	Bullets []string `json:"bullets"`
}

// RawEducation mirrors Education with optional fields.
type RawEducation struct {
	ID      *string `json:"id"`
	School  *string `json:"school"`
	Degree  *string `json:"degree"`
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Details *string `json:"details"`
}

// RawProject mirrors Project with optional fields.
type RawProject struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	Description  *string `json:"description"`
	Technologies *string `json:"technologies"`
	Link         *string `json:"link"`
}

// Decode parses raw JSON and normalizes it into a valid BuilderState.
// Unparsable input returns an error and no state; any parsable object,
// however incomplete, normalizes successfully.
func Decode(data []byte) (BuilderState, error) {
	var raw RawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return BuilderState{}, err
	}
	return Normalize(raw), nil
}

// Normalize repairs a possibly partial document into the canonical fully
// specified shape. It is total: any RawState input yields a valid state.
// Missing profile and UI fields take defaults from InitialState; an
// absent entry list falls back to the sample list while a present-but-
// empty list stays empty; list entries get fresh ids when missing; an
// experience bullet list is never left empty. Ids already present are
// preserved, so normalizing twice is a no-op.
func Normalize(raw RawState) BuilderState {
	initial := InitialState()

	state := BuilderState{
		Data: CVData{
			Profile:    normalizeProfile(initial.Data.Profile, rawProfile(raw)),
			Experience: normalizeExperience(initial, rawData(raw).Experience, rawData(raw).hasExperience()),
			Education:  normalizeEducation(initial, rawData(raw).Education, rawData(raw).hasEducation()),
			Projects:   normalizeProjects(initial, rawData(raw).Projects, rawData(raw).hasProjects()),
		},
		UI: normalizeUI(initial.UI, raw.UI),
	}
	if raw.JDText != nil {
		state.JDText = *raw.JDText
	}
	return state
}

func rawData(raw RawState) *RawData {
	if raw.Data == nil {
		return &RawData{}
	}
	return raw.Data
}

func rawProfile(raw RawState) *RawProfile {
	if raw.Data == nil || raw.Data.Profile == nil {
		return &RawProfile{}
	}
	return raw.Data.Profile
}

func (d *RawData) hasExperience() bool { return d.Experience != nil }
func (d *RawData) hasEducation() bool  { return d.Education != nil }
func (d *RawData) hasProjects() bool   { return d.Projects != nil }

func normalizeProfile(base Profile, raw *RawProfile) Profile {
	setIf(&base.Name, raw.Name)
	setIf(&base.Title, raw.Title)
	setIf(&base.Target, raw.Target)
	setIf(&base.Summary, raw.Summary)
	setIf(&base.Email, raw.Email)
	setIf(&base.Phone, raw.Phone)
	setIf(&base.Location, raw.Location)
	setIf(&base.Website, raw.Website)
	setIf(&base.LinkedIn, raw.LinkedIn)
	setIf(&base.GitHub, raw.GitHub)
	setIf(&base.Photo, raw.Photo)
	setIf(&base.Skills, raw.Skills)
	setIf(&base.Languages, raw.Languages)
	return base
}

func normalizeExperience(initial BuilderState, items []RawExperience, present bool) []Experience {
	if !present {
		return initial.Data.Experience
	}
	out := make([]Experience, 0, len(items))
	for _, item := range items {
		exp := Experience{
			ID:      orNewID(item.ID),
			Company: deref(item.Company),
			Role:    deref(item.Role),
			Start:   deref(item.Start),
			End:     deref(item.End),
		}
		if item.Current != nil {
			exp.Current = *item.Current
		}
		if len(item.Bullets) > 0 {
			exp.Bullets = item.Bullets
		} else {
			exp.Bullets = []string{""}
		}
		out = append(out, exp)
	}
	return out
}

func normalizeEducation(initial BuilderState, items []RawEducation, present bool) []Education {
	if !present {
		return initial.Data.Education
	}
	out := make([]Education, 0, len(items))
	for _, item := range items {
		out = append(out, Education{
			ID:      orNewID(item.ID),
			School:  deref(item.School),
			Degree:  deref(item.Degree),
			Start:   deref(item.Start),
			End:     deref(item.End),
			Details: deref(item.Details),
		})
	}
	return out
}

func normalizeProjects(initial BuilderState, items []RawProject, present bool) []Project {
	if !present {
		return initial.Data.Projects
	}
	out := make([]Project, 0, len(items))
	for _, item := range items {
		out = append(out, Project{
			ID:           orNewID(item.ID),
			Name:         deref(item.Name),
			Role:         deref(item.Role),
			Description:  deref(item.Description),
			Technologies: deref(item.Technologies),
			Link:         deref(item.Link),
		})
	}
	return out
}

// RawUI mirrors UIState with optional fields.
type RawUI struct {
	Template   *TemplateID `json:"template"`
	FontPreset *int        `json:"fontPreset"`
	Accent     *string     `json:"accent"`
	BaseSizePt *float64    `json:"baseSizePt"`
	Compact    *bool       `json:"compact"`
}

func normalizeUI(base UIState, raw *RawUI) UIState {
	if raw == nil {
		return base
	}
	if raw.Template != nil {
		base.Template = *raw.Template
	}
	if raw.FontPreset != nil {
		base.FontPreset = *raw.FontPreset
	}
	if raw.Accent != nil {
		base.Accent = *raw.Accent
	}
	if raw.BaseSizePt != nil {
		base.BaseSizePt = *raw.BaseSizePt
	}
	if raw.Compact != nil {
		base.Compact = *raw.Compact
	}
	return base
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNewID(id *string) string {
	if id != nil && *id != "" {
		return *id
	}
	return NewID()
}
