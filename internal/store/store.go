// Package store holds the builder document and applies editing intents
// one at a time. Every operation is a total function over the state: an
// id that matches no entry and a move past a list boundary are silent
// no-ops, never errors. Ids are only produced internally, so a stale id
// means a racing caller and should not propagate a failure.
package store

import (
	"sync"

	"cvforge/internal/cv"
)

// Saver receives the new state after every applied intent. Persistence
// is write-through and best-effort; implementations log and swallow
// their own failures.
type Saver func(cv.BuilderState)

// Store is the sole authority over document contents.
type Store struct {
	mu    sync.Mutex
	state cv.BuilderState
	saver Saver
}

// New creates a store seeded with the given state.
func New(initial cv.BuilderState) *Store {
	return &Store{state: initial}
}

// OnChange registers a write-through hook invoked after every applied
// intent. Pass nil to disable.
func (s *Store) OnChange(saver Saver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saver = saver
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() cv.BuilderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// apply runs one transition under the lock and triggers write-through.
func (s *Store) apply(fn func(*cv.BuilderState)) {
	s.mu.Lock()
	fn(&s.state)
	saver, state := s.saver, s.state.Clone()
	s.mu.Unlock()

	if saver != nil {
		saver(state)
	}
}

// ProfilePatch carries partial profile updates; nil fields are left
// untouched.
type ProfilePatch struct {
	Name      *string `json:"name,omitempty"`
	Title     *string `json:"title,omitempty"`
	Target    *string `json:"target,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Photo     *string `json:"photo,omitempty"`
	Skills    *string `json:"skills,omitempty"`
	Languages *string `json:"languages,omitempty"`
}

// ExperiencePatch carries partial experience updates.
type ExperiencePatch struct {
	Company *string   `json:"company,omitempty"`
	Role    *string   `json:"role,omitempty"`
	Start   *string   `json:"start,omitempty"`
	End     *string   `json:"end,omitempty"`
	Current *bool     `json:"current,omitempty"`
	Bullets *[]string `json:"bullets,omitempty"`
}

// EducationPatch carries partial education updates.
type EducationPatch struct {
	School  *string `json:"school,omitempty"`
	Degree  *string `json:"degree,omitempty"`
	Start   *string `json:"start,omitempty"`
	End     *string `json:"end,omitempty"`
	Details *string `json:"details,omitempty"`
}

// ProjectPatch carries partial project updates.
type ProjectPatch struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	Description  *string `json:"description,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	Link         *string `json:"link,omitempty"`
}

// UIPatch carries partial UI preference updates. BaseSizePt, when
// present, is clamped to [cv.MinBaseSizePt, cv.MaxBaseSizePt].
type UIPatch struct {
	Template   *cv.TemplateID `json:"template,omitempty"`
	FontPreset *int           `json:"fontPreset,omitempty"`
	Accent     *string        `json:"accent,omitempty"`
	BaseSizePt *float64       `json:"baseSizePt,omitempty"`
	Compact    *bool          `json:"compact,omitempty"`
}

// UpdateProfile merges the given fields into the profile.
func (s *Store) UpdateProfile(patch ProfilePatch) {
	s.apply(func(state *cv.BuilderState) {
		p := &state.Data.Profile
		setIf(&p.Name, patch.Name)
		setIf(&p.Title, patch.Title)
		setIf(&p.Target, patch.Target)
		setIf(&p.Summary, patch.Summary)
		setIf(&p.Email, patch.Email)
		setIf(&p.Phone, patch.Phone)
		setIf(&p.Location, patch.Location)
		setIf(&p.Website, patch.Website)
		setIf(&p.LinkedIn, patch.LinkedIn)
		setIf(&p.GitHub, patch.GitHub)
		setIf(&p.Photo, patch.Photo)
		setIf(&p.Skills, patch.Skills)
		setIf(&p.Languages, patch.Languages)
	})
}

// AddExperience appends a blank experience entry and returns its id so
// the caller can focus it.
func (s *Store) AddExperience() string {
	entry := cv.NewExperience()
	s.apply(func(state *cv.BuilderState) {
		state.Data.Experience = append(state.Data.Experience, entry)
	})
	return entry.ID
}

// PatchExperience merges fields into the entry matching id.
func (s *Store) PatchExperience(id string, patch ExperiencePatch) {
	s.apply(func(state *cv.BuilderState) {
		for i := range state.Data.Experience {
			if state.Data.Experience[i].ID != id {
				continue
			}
			exp := &state.Data.Experience[i]
			setIf(&exp.Company, patch.Company)
			setIf(&exp.Role, patch.Role)
			setIf(&exp.Start, patch.Start)
			setIf(&exp.End, patch.End)
			if patch.Current != nil {
				exp.Current = *patch.Current
			}
			if patch.Bullets != nil {
				exp.Bullets = append([]string(nil), (*patch.Bullets)...)
				if len(exp.Bullets) == 0 {
					exp.Bullets = []string{""}
				}
			}
			return
		}
	})
}

// RemoveExperience deletes the entry matching id.
func (s *Store) RemoveExperience(id string) {
	s.apply(func(state *cv.BuilderState) {
		state.Data.Experience = removeByID(state.Data.Experience, id, func(e cv.Experience) string { return e.ID })
	})
}

// MoveExperience swaps the entry with its neighbor in the given
// direction.
func (s *Store) MoveExperience(id string, direction cv.MoveDirection) {
	s.apply(func(state *cv.BuilderState) {
		moveByID(state.Data.Experience, id, direction, func(e cv.Experience) string { return e.ID })
	})
}

// AddEducation appends a blank education entry and returns its id.
func (s *Store) AddEducation() string {
	entry := cv.NewEducation()
	s.apply(func(state *cv.BuilderState) {
		state.Data.Education = append(state.Data.Education, entry)
	})
	return entry.ID
}

// PatchEducation merges fields into the entry matching id.
func (s *Store) PatchEducation(id string, patch EducationPatch) {
	s.apply(func(state *cv.BuilderState) {
		for i := range state.Data.Education {
			if state.Data.Education[i].ID != id {
				continue
			}
			edu := &state.Data.Education[i]
			setIf(&edu.School, patch.School)
			setIf(&edu.Degree, patch.Degree)
			setIf(&edu.Start, patch.Start)
			setIf(&edu.End, patch.End)
			setIf(&edu.Details, patch.Details)
			return
		}
	})
}

// RemoveEducation deletes the entry matching id.
func (s *Store) RemoveEducation(id string) {
	s.apply(func(state *cv.BuilderState) {
		state.Data.Education = removeByID(state.Data.Education, id, func(e cv.Education) string { return e.ID })
	})
}

// MoveEducation swaps the entry with its neighbor in the given direction.
func (s *Store) MoveEducation(id string, direction cv.MoveDirection) {
	s.apply(func(state *cv.BuilderState) {
		moveByID(state.Data.Education, id, direction, func(e cv.Education) string { return e.ID })
	})
}

// AddProject appends a blank project entry and returns its id.
func (s *Store) AddProject() string {
	entry := cv.NewProject()
	s.apply(func(state *cv.BuilderState) {
		state.Data.Projects = append(state.Data.Projects, entry)
	})
	return entry.ID
}

// PatchProject merges fields into the entry matching id.
func (s *Store) PatchProject(id string, patch ProjectPatch) {
	s.apply(func(state *cv.BuilderState) {
		for i := range state.Data.Projects {
			if state.Data.Projects[i].ID != id {
				continue
			}
			proj := &state.Data.Projects[i]
			setIf(&proj.Name, patch.Name)
			setIf(&proj.Role, patch.Role)
			setIf(&proj.Description, patch.Description)
			setIf(&proj.Technologies, patch.Technologies)
			setIf(&proj.Link, patch.Link)
			return
		}
	})
}

// RemoveProject deletes the entry matching id.
func (s *Store) RemoveProject(id string) {
	s.apply(func(state *cv.BuilderState) {
		state.Data.Projects = removeByID(state.Data.Projects, id, func(p cv.Project) string { return p.ID })
	})
}

// MoveProject swaps the entry with its neighbor in the given direction.
func (s *Store) MoveProject(id string, direction cv.MoveDirection) {
	s.apply(func(state *cv.BuilderState) {
		moveByID(state.Data.Projects, id, direction, func(p cv.Project) string { return p.ID })
	})
}

// UpdateUI merges UI preference fields. BaseSizePt is clamped before the
// merge; when absent the previous value is preserved unclamped.
func (s *Store) UpdateUI(patch UIPatch) {
	s.apply(func(state *cv.BuilderState) {
		ui := &state.UI
		if patch.Template != nil {
			ui.Template = *patch.Template
		}
		if patch.FontPreset != nil {
			ui.FontPreset = *patch.FontPreset
		}
		setIf(&ui.Accent, patch.Accent)
		if patch.BaseSizePt != nil {
			ui.BaseSizePt = clamp(*patch.BaseSizePt, cv.MinBaseSizePt, cv.MaxBaseSizePt)
		}
		if patch.Compact != nil {
			ui.Compact = *patch.Compact
		}
	})
}

// SetJDText replaces the pasted job description verbatim.
func (s *Store) SetJDText(text string) {
	s.apply(func(state *cv.BuilderState) {
		state.JDText = text
	})
}

// Reset replaces the whole document with next, or with the canonical
// sample document when next is nil.
func (s *Store) Reset(next *cv.BuilderState) {
	s.apply(func(state *cv.BuilderState) {
		if next != nil {
			*state = next.Clone()
		} else {
			*state = cv.InitialState()
		}
	})
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// removeByID filters out the entry with the given id. Unknown ids leave
// the slice unchanged.
func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == id {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

// moveByID swaps the entry with its immediate neighbor in place. Out of
// bounds targets and unknown ids are no-ops.
func moveByID[T any](items []T, id string, direction cv.MoveDirection, idOf func(T) string) {
	idx := -1
	for i, item := range items {
		if idOf(item) == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	target := idx + 1
	if direction == cv.MoveUp {
		target = idx - 1
	}
	if target < 0 || target >= len(items) {
		return
	}
	items[idx], items[target] = items[target], items[idx]
}
