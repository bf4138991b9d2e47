package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"cvforge/internal/config"
	"cvforge/internal/cv"
	"cvforge/internal/errors"
	"cvforge/internal/jd"
	"cvforge/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	db    *sql.DB
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{store: st, db: db, cfg: cfg}
}

// Request types for each tool

// UpdateProfileRequest represents the arguments for cv_update_profile.
type UpdateProfileRequest struct {
	Fields json.RawMessage `json:"fields"`
}

// AddEntryRequest represents the arguments for cv_add_entry.
type AddEntryRequest struct {
	Section string `json:"section"`
}

// PatchEntryRequest represents the arguments for cv_patch_entry.
type PatchEntryRequest struct {
	Section string          `json:"section"`
	ID      string          `json:"id"`
	Fields  json.RawMessage `json:"fields"`
}

// RemoveEntryRequest represents the arguments for cv_remove_entry.
type RemoveEntryRequest struct {
	Section string `json:"section"`
	ID      string `json:"id"`
}

// MoveEntryRequest represents the arguments for cv_move_entry.
type MoveEntryRequest struct {
	Section   string `json:"section"`
	ID        string `json:"id"`
	Direction string `json:"direction"`
}

// UpdateUIRequest represents the arguments for cv_update_ui.
type UpdateUIRequest struct {
	Fields json.RawMessage `json:"fields"`
}

// SetJDRequest represents the arguments for cv_set_jd.
type SetJDRequest struct {
	Text string `json:"text"`
}

// MatchRequest represents the arguments for cv_match.
type MatchRequest struct {
	JDText *string `json:"jd_text,omitempty"`
}

// ImportRequest represents the arguments for cv_import.
type ImportRequest struct {
	JSON string `json:"json"`
}

// Handler implementations

// HandleGet handles the cv_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.store.Snapshot())
}

// HandleUpdateProfile handles the cv_update_profile tool call.
func (h *Handlers) HandleUpdateProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateProfileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var patch store.ProfilePatch
	if err := json.Unmarshal(input.Fields, &patch); err != nil {
		return errorResult(errors.NewInvalidRequest("invalid fields: " + err.Error())), nil
	}

	h.store.UpdateProfile(patch)
	return successResult(h.store.Snapshot())
}

// HandleAddEntry handles the cv_add_entry tool call.
func (h *Handlers) HandleAddEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var id string
	switch input.Section {
	case "experience":
		id = h.store.AddExperience()
	case "education":
		id = h.store.AddEducation()
	case "projects":
		id = h.store.AddProject()
	default:
		return errorResult(errors.NewInvalidRequest("section must be one of: experience, education, projects")), nil
	}

	return successResult(map[string]any{"id": id, "state": h.store.Snapshot()})
}

// HandlePatchEntry handles the cv_patch_entry tool call.
func (h *Handlers) HandlePatchEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PatchEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	switch input.Section {
	case "experience":
		var patch store.ExperiencePatch
		if err := json.Unmarshal(input.Fields, &patch); err != nil {
			return errorResult(errors.NewInvalidRequest("invalid fields: " + err.Error())), nil
		}
		h.store.PatchExperience(input.ID, patch)
	case "education":
		var patch store.EducationPatch
		if err := json.Unmarshal(input.Fields, &patch); err != nil {
			return errorResult(errors.NewInvalidRequest("invalid fields: " + err.Error())), nil
		}
		h.store.PatchEducation(input.ID, patch)
	case "projects":
		var patch store.ProjectPatch
		if err := json.Unmarshal(input.Fields, &patch); err != nil {
			return errorResult(errors.NewInvalidRequest("invalid fields: " + err.Error())), nil
		}
		h.store.PatchProject(input.ID, patch)
	default:
		return errorResult(errors.NewInvalidRequest("section must be one of: experience, education, projects")), nil
	}

	return successResult(h.store.Snapshot())
}

// HandleRemoveEntry handles the cv_remove_entry tool call.
func (h *Handlers) HandleRemoveEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	switch input.Section {
	case "experience":
		h.store.RemoveExperience(input.ID)
	case "education":
		h.store.RemoveEducation(input.ID)
	case "projects":
		h.store.RemoveProject(input.ID)
	default:
		return errorResult(errors.NewInvalidRequest("section must be one of: experience, education, projects")), nil
	}

	return successResult(h.store.Snapshot())
}

// HandleMoveEntry handles the cv_move_entry tool call.
func (h *Handlers) HandleMoveEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoveEntryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	direction := cv.MoveDirection(input.Direction)
	if direction != cv.MoveUp && direction != cv.MoveDown {
		return errorResult(errors.NewInvalidRequest("direction must be one of: up, down")), nil
	}

	switch input.Section {
	case "experience":
		h.store.MoveExperience(input.ID, direction)
	case "education":
		h.store.MoveEducation(input.ID, direction)
	case "projects":
		h.store.MoveProject(input.ID, direction)
	default:
		return errorResult(errors.NewInvalidRequest("section must be one of: experience, education, projects")), nil
	}

	return successResult(h.store.Snapshot())
}

// HandleUpdateUI handles the cv_update_ui tool call.
func (h *Handlers) HandleUpdateUI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateUIRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var patch store.UIPatch
	if err := json.Unmarshal(input.Fields, &patch); err != nil {
		return errorResult(errors.NewInvalidRequest("invalid fields: " + err.Error())), nil
	}

	h.store.UpdateUI(patch)
	return successResult(h.store.Snapshot())
}

// HandleSetJD handles the cv_set_jd tool call.
func (h *Handlers) HandleSetJD(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SetJDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.SetJDText(input.Text)
	return successResult(h.store.Snapshot())
}

// HandleMatch handles the cv_match tool call.
func (h *Handlers) HandleMatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MatchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	snapshot := h.store.Snapshot()
	jdText := snapshot.JDText
	if input.JDText != nil {
		jdText = *input.JDText
	}

	return successResult(jd.Match(jdText, snapshot.Data))
}

// HandleImport handles the cv_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	state, err := cv.Decode([]byte(input.JSON))
	if err != nil {
		return errorResult(errors.NewParse(err)), nil
	}

	h.store.Reset(&state)
	return successResult(h.store.Snapshot())
}

// HandleReset handles the cv_reset tool call.
func (h *Handlers) HandleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.store.Reset(nil)
	return successResult(h.store.Snapshot())
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Note: Internal error details are not exposed to prevent leaking
// sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if e, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    e.Code,
			"message": e.Message,
			"status":  e.Status,
		}
		if e.Code != errors.ErrInternal && e.Details != nil {
			errorObj["details"] = e.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	b, _ := json.Marshal(payload)
	result := mcp.NewToolResultText(string(b))
	result.IsError = true
	return result
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
