package web

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"cvforge/internal/config"
	"cvforge/internal/cv"
	"cvforge/internal/db"
	"cvforge/internal/errors"
	"cvforge/internal/jd"
	"cvforge/internal/store"
)

// maxBodyBytes bounds request bodies; an imported document with an
// embedded photo data URL fits comfortably.
const maxBodyBytes = 8 << 20

// Handlers contains HTTP route handlers for the editor API and preview.
type Handlers struct {
	store    *store.Store
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleGetState handles GET /api/state — current document snapshot.
func (h *Handlers) HandleGetState(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleImport handles PUT /api/state — replace the document with an
// imported JSON payload, normalized. Unparsable input leaves the
// document untouched.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		renderError(w, errors.NewInternal(err))
		return
	}

	state, err := cv.Decode(body)
	if err != nil {
		renderError(w, errors.NewParse(err))
		return
	}

	h.store.Reset(&state)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleReset handles POST /api/reset — restore the sample document.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset(nil)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandlePatchProfile handles PATCH /api/profile.
func (h *Handlers) HandlePatchProfile(w http.ResponseWriter, r *http.Request) {
	var patch store.ProfilePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	h.store.UpdateProfile(patch)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandlePatchUI handles PATCH /api/ui.
func (h *Handlers) HandlePatchUI(w http.ResponseWriter, r *http.Request) {
	var patch store.UIPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	h.store.UpdateUI(patch)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleSetJD handles PUT /api/jd — replace the pasted job description.
func (h *Handlers) HandleSetJD(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	h.store.SetJDText(body.Text)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleMatch handles GET /api/match — score the stored job description
// against the document content.
func (h *Handlers) HandleMatch(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	renderJSON(w, http.StatusOK, jd.Match(snapshot.JDText, snapshot.Data))
}

// HandleAddEntry handles POST /api/{section} — append a blank entry and
// return its id.
func (h *Handlers) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	var id string
	switch r.PathValue("section") {
	case "experience":
		id = h.store.AddExperience()
	case "education":
		id = h.store.AddEducation()
	case "projects":
		id = h.store.AddProject()
	default:
		renderError(w, errors.NewNotFound(r.PathValue("section")))
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"id": id, "state": h.store.Snapshot()})
}

// HandlePatchEntry handles PATCH /api/{section}/{id}. An unknown id is a
// no-op by store policy; the unchanged snapshot is returned.
func (h *Handlers) HandlePatchEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.PathValue("section") {
	case "experience":
		var patch store.ExperiencePatch
		if !decodeBody(w, r, &patch) {
			return
		}
		h.store.PatchExperience(id, patch)
	case "education":
		var patch store.EducationPatch
		if !decodeBody(w, r, &patch) {
			return
		}
		h.store.PatchEducation(id, patch)
	case "projects":
		var patch store.ProjectPatch
		if !decodeBody(w, r, &patch) {
			return
		}
		h.store.PatchProject(id, patch)
	default:
		renderError(w, errors.NewNotFound(r.PathValue("section")))
		return
	}
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleRemoveEntry handles DELETE /api/{section}/{id}.
func (h *Handlers) HandleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.PathValue("section") {
	case "experience":
		h.store.RemoveExperience(id)
	case "education":
		h.store.RemoveEducation(id)
	case "projects":
		h.store.RemoveProject(id)
	default:
		renderError(w, errors.NewNotFound(r.PathValue("section")))
		return
	}
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleMoveEntry handles POST /api/{section}/{id}/move.
func (h *Handlers) HandleMoveEntry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction cv.MoveDirection `json:"direction"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Direction != cv.MoveUp && body.Direction != cv.MoveDown {
		renderError(w, errors.NewInvalidRequest("direction must be one of: up, down"))
		return
	}

	id := r.PathValue("id")
	switch r.PathValue("section") {
	case "experience":
		h.store.MoveExperience(id, body.Direction)
	case "education":
		h.store.MoveEducation(id, body.Direction)
	case "projects":
		h.store.MoveProject(id, body.Direction)
	default:
		renderError(w, errors.NewNotFound(r.PathValue("section")))
		return
	}
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleHistory handles GET /api/history — saved revision metadata.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	revisions, err := db.ListRevisions(h.db)
	if err != nil {
		renderError(w, errors.NewInternal(err))
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"revisions": revisions})
}

// HandleRestore handles POST /api/history/{id}/restore — adopt a saved
// revision as the current document.
func (h *Handlers) HandleRestore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := db.GetRevision(h.db, id)
	if err != nil {
		renderError(w, errors.NewInternal(err))
		return
	}
	if state == nil {
		renderError(w, errors.NewNotFound(id))
		return
	}
	h.store.Reset(state)
	renderJSON(w, http.StatusOK, h.store.Snapshot())
}

// HandleExport handles GET /export — the document as a JSON download.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := h.store.Snapshot().Encode()
	if err != nil {
		renderError(w, errors.NewInternal(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+cv.ExportFilename+`"`)
	_, _ = w.Write(payload)
}

// HandlePreview handles GET /preview — server-rendered print preview.
// The template query parameter overrides the stored template selection.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()

	if t := r.URL.Query().Get("template"); t != "" {
		snapshot.UI.Template = cv.TemplateID(t)
	}
	h.renderer.renderPreview(w, snapshot)
}

// decodeBody decodes a JSON request body, rendering a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		renderError(w, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// renderError writes a structured JSON error response.
func renderError(w http.ResponseWriter, err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		e = errors.NewInternal(err)
	}
	renderJSON(w, e.Status, map[string]any{
		"error": map[string]any{
			"code":    string(e.Code),
			"message": e.Message,
			"status":  e.Status,
		},
	})
}
