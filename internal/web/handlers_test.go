package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cvforge/internal/config"
	"cvforge/internal/cv"
	"cvforge/internal/db"
	"cvforge/internal/jd"
	"cvforge/internal/store"
)

// setupTest builds a server handler backed by a temp database with
// write-through persistence, mirroring the production wiring.
func setupTest(t *testing.T) http.Handler {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()

	st := store.New(cv.InitialState())
	st.OnChange(func(state cv.BuilderState) {
		if err := db.SaveState(database, state, cfg.HistoryLimit); err != nil {
			t.Errorf("SaveState: %v", err)
		}
	})

	return NewServer(st, database, cfg, "test").Handler
}

// doJSON performs a request with a JSON body and decodes the response.
func doJSON(t *testing.T, handler http.Handler, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec
}

func TestHandleGetState(t *testing.T) {
	handler := setupTest(t)

	var state cv.BuilderState
	rec := doJSON(t, handler, "GET", "/api/state", "", &state)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if state.Data.Profile.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want sample name", state.Data.Profile.Name)
	}
	if len(state.Data.Experience) != 2 {
		t.Errorf("experience = %d entries, want 2", len(state.Data.Experience))
	}
}

func TestHandleImport(t *testing.T) {
	handler := setupTest(t)

	var state cv.BuilderState
	rec := doJSON(t, handler, "PUT", "/api/state",
		`{"data":{"profile":{"name":"Imported"},"experience":[]}}`, &state)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if state.Data.Profile.Name != "Imported" {
		t.Errorf("name = %q, want Imported", state.Data.Profile.Name)
	}
	if len(state.Data.Experience) != 0 {
		t.Errorf("experience = %d entries, want 0", len(state.Data.Experience))
	}
	// Absent education falls back to the sample list.
	if len(state.Data.Education) != 1 {
		t.Errorf("education = %d entries, want 1", len(state.Data.Education))
	}
}

func TestHandleImportInvalidJSONLeavesStateUntouched(t *testing.T) {
	handler := setupTest(t)

	rec := doJSON(t, handler, "PUT", "/api/state", "{not json", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != "PARSE_ERROR" {
		t.Errorf("error code = %q, want PARSE_ERROR", payload.Error.Code)
	}

	var state cv.BuilderState
	doJSON(t, handler, "GET", "/api/state", "", &state)
	if state.Data.Profile.Name != "Ada Lovelace" {
		t.Error("document should be untouched after failed import")
	}
}

func TestHandleReset(t *testing.T) {
	handler := setupTest(t)

	doJSON(t, handler, "PATCH", "/api/profile", `{"name":"changed"}`, nil)

	var state cv.BuilderState
	rec := doJSON(t, handler, "POST", "/api/reset", "", &state)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if state.Data.Profile.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want sample name after reset", state.Data.Profile.Name)
	}
}

func TestHandlePatchProfile(t *testing.T) {
	handler := setupTest(t)

	var state cv.BuilderState
	rec := doJSON(t, handler, "PATCH", "/api/profile", `{"name":"Grace","phone":""}`, &state)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if state.Data.Profile.Name != "Grace" {
		t.Errorf("name = %q, want Grace", state.Data.Profile.Name)
	}
	if state.Data.Profile.Phone != "" {
		t.Errorf("phone = %q, want cleared", state.Data.Profile.Phone)
	}
	if state.Data.Profile.Email != "ada@example.com" {
		t.Errorf("email = %q, want untouched", state.Data.Profile.Email)
	}
}

func TestHandlePatchUIClamps(t *testing.T) {
	handler := setupTest(t)

	var state cv.BuilderState
	doJSON(t, handler, "PATCH", "/api/ui", `{"baseSizePt":5}`, &state)
	if state.UI.BaseSizePt != 10 {
		t.Errorf("baseSizePt = %v, want clamped to 10", state.UI.BaseSizePt)
	}

	doJSON(t, handler, "PATCH", "/api/ui", `{"baseSizePt":99,"compact":true}`, &state)
	if state.UI.BaseSizePt != 13 {
		t.Errorf("baseSizePt = %v, want clamped to 13", state.UI.BaseSizePt)
	}
	if !state.UI.Compact {
		t.Error("expected compact=true")
	}
}

func TestHandleEntryLifecycle(t *testing.T) {
	handler := setupTest(t)

	// Add.
	var addResp struct {
		ID    string          `json:"id"`
		State cv.BuilderState `json:"state"`
	}
	rec := doJSON(t, handler, "POST", "/api/experience", "", &addResp)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, want 200", rec.Code)
	}
	if addResp.ID == "" {
		t.Fatal("expected non-empty id")
	}
	if len(addResp.State.Data.Experience) != 3 {
		t.Fatalf("experience = %d entries, want 3", len(addResp.State.Data.Experience))
	}

	// Patch.
	var state cv.BuilderState
	doJSON(t, handler, "PATCH", "/api/experience/"+addResp.ID, `{"company":"Acme"}`, &state)
	if state.Data.Experience[2].Company != "Acme" {
		t.Errorf("company = %q, want Acme", state.Data.Experience[2].Company)
	}

	// Move up.
	doJSON(t, handler, "POST", "/api/experience/"+addResp.ID+"/move", `{"direction":"up"}`, &state)
	if state.Data.Experience[1].ID != addResp.ID {
		t.Error("expected entry moved to index 1")
	}

	// Remove.
	doJSON(t, handler, "DELETE", "/api/experience/"+addResp.ID, "", &state)
	if len(state.Data.Experience) != 2 {
		t.Errorf("experience = %d entries, want 2 after removal", len(state.Data.Experience))
	}
}

func TestHandleMoveBoundaryNoOp(t *testing.T) {
	handler := setupTest(t)

	var state cv.BuilderState
	rec := doJSON(t, handler, "POST", "/api/experience/exp-1/move", `{"direction":"up"}`, &state)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for boundary no-op", rec.Code)
	}
	if state.Data.Experience[0].ID != "exp-1" {
		t.Error("boundary move should leave order unchanged")
	}
}

func TestHandleMoveInvalidDirection(t *testing.T) {
	handler := setupTest(t)

	rec := doJSON(t, handler, "POST", "/api/experience/exp-1/move", `{"direction":"sideways"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUnknownSection(t *testing.T) {
	handler := setupTest(t)

	rec := doJSON(t, handler, "POST", "/api/certifications", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSetJDAndMatch(t *testing.T) {
	handler := setupTest(t)

	doJSON(t, handler, "PUT", "/api/jd", `{"text":"React TypeScript Kubernetes"}`, nil)

	var result jd.MatchResult
	rec := doJSON(t, handler, "GET", "/api/match", "", &result)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if result.Score != 67 {
		t.Errorf("score = %d, want 67", result.Score)
	}
	if len(result.Missing) != 1 || result.Missing[0] != "kubernetes" {
		t.Errorf("missing = %v, want [kubernetes]", result.Missing)
	}
}

func TestHandleHistoryAndRestore(t *testing.T) {
	handler := setupTest(t)

	doJSON(t, handler, "PATCH", "/api/profile", `{"name":"First"}`, nil)
	doJSON(t, handler, "PATCH", "/api/profile", `{"name":"Second"}`, nil)

	var history struct {
		Revisions []db.Revision `json:"revisions"`
	}
	rec := doJSON(t, handler, "GET", "/api/history", "", &history)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(history.Revisions) != 2 {
		t.Fatalf("revisions = %d, want 2", len(history.Revisions))
	}

	// Newest first: index 1 is the "First" snapshot.
	var state cv.BuilderState
	rec = doJSON(t, handler, "POST", "/api/history/"+history.Revisions[1].ID+"/restore", "", &state)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, want 200", rec.Code)
	}
	if state.Data.Profile.Name != "First" {
		t.Errorf("restored name = %q, want First", state.Data.Profile.Name)
	}
}

func TestHandleRestoreUnknownRevision(t *testing.T) {
	handler := setupTest(t)

	rec := doJSON(t, handler, "POST", "/api/history/01ARZ3NDEKTSV4RRFFQ69G5FAV/restore", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	handler := setupTest(t)

	req := httptest.NewRequest("GET", "/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, cv.ExportFilename) {
		t.Errorf("Content-Disposition = %q, want filename %q", disposition, cv.ExportFilename)
	}

	state, err := cv.Decode(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("exported document does not decode: %v", err)
	}
	if state.Data.Profile.Name != "Ada Lovelace" {
		t.Errorf("exported name = %q", state.Data.Profile.Name)
	}
}

func TestHandlePreview(t *testing.T) {
	handler := setupTest(t)

	for _, template := range []string{"", "best", "classic", "simple", "visual2col", "bogus"} {
		path := "/preview"
		if template != "" {
			path += "?template=" + template
		}
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("preview %q: status = %d, want 200", template, rec.Code)
			continue
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Ada Lovelace") {
			t.Errorf("preview %q: expected profile name in output", template)
		}
		if !strings.Contains(body, "resume-page") {
			t.Errorf("preview %q: expected resume page shell", template)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := setupTest(t)

	req := httptest.NewRequest("GET", "/api/state", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected Content-Security-Policy header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options: nosniff")
	}
}
