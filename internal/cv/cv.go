package cv

import "encoding/json"

// ExportFilename is the canonical name for an exported document.
const ExportFilename = "curriculum-maker.json"

// TemplateID selects one of the built-in résumé layouts.
type TemplateID string

const (
	TemplateBest       TemplateID = "best"
	TemplateClassic    TemplateID = "classic"
	TemplateSimple     TemplateID = "simple"
	TemplateVisual2Col TemplateID = "visual2col"
)

// MoveDirection indicates which neighbor an entry swaps with.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// BaseSizePt bounds. UpdateUI clamps into this range; values already in
// state are assumed in range.
const (
	MinBaseSizePt = 10
	MaxBaseSizePt = 13
)

// Profile is the singleton header block of the document. It carries no
// identity; it is a value object owned by the document.
type Profile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Target   string `json:"target,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`

	// Photo is an image reference or data URL, passed through verbatim.
	Photo string `json:"photo,omitempty"`

	// Skills encodes grouped skills as "Group: item, item; Group2: item".
	Skills string `json:"skills,omitempty"`

	// Languages encodes pipe-delimited "Name — Level" tokens.
	Languages string `json:"languages,omitempty"`
}

// Experience is one work history entry.
type Experience struct {
	// ID uniquely identifies the entry within its list. Assigned once at
	// creation, never reassigned.
	ID      string `json:"id"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Start   string `json:"start"`
	End     string `json:"end"`

	// Current marks an ongoing position; when true the End value is
	// ignored by rendering and date formatting.
	Current bool `json:"current"`

	// Bullets holds ordered achievement statements. Never empty: removal
	// of the last bullet resets the list to a single empty string.
	Bullets []string `json:"bullets"`
}

// Education is one education entry.
type Education struct {
	ID      string `json:"id"`
	School  string `json:"school"`
	Degree  string `json:"degree"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Details string `json:"details,omitempty"`
}

// Project is one project entry.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Description  string `json:"description"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

// CVData is the document content: the profile plus the three ordered
// entry lists. List order is user-controlled and significant.
type CVData struct {
	Profile    Profile      `json:"profile"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
}

// UIState holds presentation preferences for the rendered document.
type UIState struct {
	Template   TemplateID `json:"template"`
	FontPreset int        `json:"fontPreset"`
	Accent     string     `json:"accent"`
	BaseSizePt float64    `json:"baseSizePt"`
	Compact    bool       `json:"compact"`
}

// BuilderState is the document root: the single persisted and exported
// unit. JSON field names match the export format of the web builder.
type BuilderState struct {
	Data   CVData  `json:"data"`
	UI     UIState `json:"ui"`
	JDText string  `json:"jdText"`
}

// Encode serializes the state in the export format: indented JSON with
// every list present, even when empty.
func (s BuilderState) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Clone returns a deep copy of the state. Entry slices and bullet slices
// are copied so callers can hold snapshots without aliasing store state.
func (s BuilderState) Clone() BuilderState {
	out := s
	out.Data.Experience = make([]Experience, len(s.Data.Experience))
	for i, exp := range s.Data.Experience {
		exp.Bullets = append([]string(nil), exp.Bullets...)
		out.Data.Experience[i] = exp
	}
	out.Data.Education = append([]Education(nil), s.Data.Education...)
	out.Data.Projects = append([]Project(nil), s.Data.Projects...)
	return out
}
