package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"cvforge/internal/cv"
)

// PreviewData is the template data for the print preview pages.
type PreviewData struct {
	State     cv.BuilderState
	Skills    []cv.SkillGroup
	Languages []cv.LanguageEntry
	Font      cv.FontPresetDef
	Version   string
}

// Renderer manages template parsing and rendering for the preview.
type Renderer struct {
	templates map[cv.TemplateID]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
// Each résumé layout is parsed against the shared layout shell.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"dateRange":   cv.DateRange,
		"markdown":    renderMarkdown,
		"githubURL":   cv.GitHubURL,
		"linkedinURL": cv.LinkedInURL,
		"websiteURL":  cv.WebsiteURL,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[cv.TemplateID]string{
		cv.TemplateBest:       "best.html",
		cv.TemplateClassic:    "classic.html",
		cv.TemplateSimple:     "simple.html",
		cv.TemplateVisual2Col: "visual2col.html",
	}

	templates := make(map[cv.TemplateID]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPreview renders the document through the selected layout.
// Unknown template ids fall back to "best" rather than failing: the ui
// merge does not validate the template field, so foreign imports may
// carry anything.
func (r *Renderer) renderPreview(w http.ResponseWriter, state cv.BuilderState) {
	t, ok := r.templates[state.UI.Template]
	if !ok {
		t = r.templates[cv.TemplateBest]
	}

	data := PreviewData{
		State:     state,
		Skills:    cv.ParseSkillGroups(state.Data.Profile.Skills),
		Languages: cv.ParseLanguages(state.Data.Profile.Languages),
		Font:      cv.FontPresetByID(state.UI.FontPreset),
		Version:   r.version,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// renderMarkdown converts markdown text to HTML using goldmark. Free
// text blocks (summary, details, descriptions) accept inline markdown.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
