package mcp

import (
	"database/sql"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cvforge/internal/config"
	"cvforge/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler
// factories.
var toolRegistry = map[string]toolEntry{
	"cv_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"cv_update_profile": {
		def:     updateProfileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdateProfile },
	},
	"cv_add_entry": {
		def:     addEntryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddEntry },
	},
	"cv_patch_entry": {
		def:     patchEntryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePatchEntry },
	},
	"cv_remove_entry": {
		def:     removeEntryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRemoveEntry },
	},
	"cv_move_entry": {
		def:     moveEntryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMoveEntry },
	},
	"cv_update_ui": {
		def:     updateUIToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdateUI },
	},
	"cv_set_jd": {
		def:     setJDToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSetJD },
	},
	"cv_match": {
		def:     matchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMatch },
	},
	"cv_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
	"cv_reset": {
		def:     resetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReset },
	},
}

// Tool definitions

var getToolDef = mcp.NewTool("cv_get",
	mcp.WithDescription("Fetch the current CV document: profile, experience, education, projects, UI preferences, and the stored job description."),
)

var updateProfileToolDef = mcp.NewTool("cv_update_profile",
	mcp.WithDescription("Merge fields into the CV profile. Only the provided fields change."),
	mcp.WithObject("fields", mcp.Description("Partial profile object (name, title, target, summary, email, phone, location, website, linkedin, github, photo, skills, languages)"), mcp.Required()),
)

var addEntryToolDef = mcp.NewTool("cv_add_entry",
	mcp.WithDescription("Append a blank entry to a CV section and return its id."),
	mcp.WithString("section", mcp.Description("One of: experience, education, projects"), mcp.Required()),
)

var patchEntryToolDef = mcp.NewTool("cv_patch_entry",
	mcp.WithDescription("Merge fields into one entry of a CV section. Unknown ids are a no-op."),
	mcp.WithString("section", mcp.Description("One of: experience, education, projects"), mcp.Required()),
	mcp.WithString("id", mcp.Description("Entry id"), mcp.Required()),
	mcp.WithObject("fields", mcp.Description("Partial entry object; fields depend on the section"), mcp.Required()),
)

var removeEntryToolDef = mcp.NewTool("cv_remove_entry",
	mcp.WithDescription("Delete one entry from a CV section. Unknown ids are a no-op."),
	mcp.WithString("section", mcp.Description("One of: experience, education, projects"), mcp.Required()),
	mcp.WithString("id", mcp.Description("Entry id"), mcp.Required()),
)

var moveEntryToolDef = mcp.NewTool("cv_move_entry",
	mcp.WithDescription("Swap an entry with its neighbor. Moves past a list boundary are a no-op."),
	mcp.WithString("section", mcp.Description("One of: experience, education, projects"), mcp.Required()),
	mcp.WithString("id", mcp.Description("Entry id"), mcp.Required()),
	mcp.WithString("direction", mcp.Description("One of: up, down"), mcp.Required()),
)

var updateUIToolDef = mcp.NewTool("cv_update_ui",
	mcp.WithDescription("Merge UI preferences (template, fontPreset, accent, baseSizePt, compact). baseSizePt is clamped to 10-13."),
	mcp.WithObject("fields", mcp.Description("Partial UI object"), mcp.Required()),
)

var setJDToolDef = mcp.NewTool("cv_set_jd",
	mcp.WithDescription("Replace the stored job description text."),
	mcp.WithString("text", mcp.Description("Job description text"), mcp.Required()),
)

var matchToolDef = mcp.NewTool("cv_match",
	mcp.WithDescription("Score the job description's keyword overlap against the CV content. Uses the stored job description unless jd_text is given."),
	mcp.WithString("jd_text", mcp.Description("Job description text; defaults to the stored one")),
)

var importToolDef = mcp.NewTool("cv_import",
	mcp.WithDescription("Replace the whole CV document with imported JSON. The payload is normalized; missing fields get defaults. Unparsable JSON leaves the document untouched."),
	mcp.WithString("json", mcp.Description("BuilderState JSON (same shape as export)"), mcp.Required()),
)

var resetToolDef = mcp.NewTool("cv_reset",
	mcp.WithDescription("Replace the whole CV document with the built-in sample document."),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the
// given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with cvforge tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, database *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"cvforge",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, database, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("unknown disabled tool %q ignored", name)
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, database *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(st, database, cfg, version)
	return server.ServeStdio(s)
}
