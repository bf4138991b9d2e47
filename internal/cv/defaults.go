package cv

// AccentPreset is a selectable accent color.
type AccentPreset struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FontPresetDef pairs a heading and body font family.
type FontPresetDef struct {
	ID      int    `json:"id"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Label   string `json:"label"`
}

// AccentPresets are the built-in accent choices offered by the builder.
var AccentPresets = []AccentPreset{
	{Value: "#0F6D53", Label: "Verde pro"},
	{Value: "#1F3A5F", Label: "Azul marino"},
	{Value: "#333333", Label: "Carbón"},
	{Value: "#7A1E2E", Label: "Borgoña"},
}

// FontPresets are the built-in typography choices, indexed by preset id.
var FontPresets = []FontPresetDef{
	{ID: 0, Heading: "Montserrat", Body: "Lato", Label: "Montserrat + Lato"},
	{ID: 1, Heading: "Poppins", Body: "Inter", Label: "Poppins + Inter"},
	{ID: 2, Heading: "Nunito Sans", Body: "Nunito Sans", Label: "Nunito Sans"},
}

// FontPresetByID returns the preset for id, falling back to preset 0 for
// out-of-range values.
func FontPresetByID(id int) FontPresetDef {
	if id < 0 || id >= len(FontPresets) {
		return FontPresets[0]
	}
	return FontPresets[id]
}

// InitialState returns the canonical sample document. It doubles as the
// source of defaults for normalization: missing profile and UI fields are
// filled from here, and entirely absent entry lists fall back to these
// sample lists.
func InitialState() BuilderState {
	return BuilderState{
		Data: CVData{
			Profile: Profile{
				Name:      "Ada Lovelace",
				Title:     "Senior Software Engineer",
				Summary:   "Ingeniera de software con foco en plataformas web escalables y experiencias accesibles.",
				Target:    "Busco liderar equipos front-end que construyan productos centrados en usuarios.",
				Email:     "ada@example.com",
				Phone:     "+34 600 000 000",
				Location:  "Madrid, España",
				Website:   "https://adalabs.dev",
				LinkedIn:  "https://www.linkedin.com/in/adalovelace",
				GitHub:    "https://github.com/adalabs",
				Skills:    "Frontend: React, Next.js, TypeScript, Tailwind CSS; Backend: Node.js, GraphQL, PostgreSQL; Tooling: Vite, Turbopack, Playwright; Cloud: Vercel, AWS, Docker",
				Languages: "Español — nativo | Inglés — C1",
			},
			Experience: []Experience{
				{
					ID:      "exp-1",
					Company: "TechNova",
					Role:    "Lead Frontend Engineer",
					Start:   "2021",
					End:     "Actualidad",
					Current: true,
					Bullets: []string{
						"Dirigí la migración a Next.js 14 con tiempos de carga 35% más rápidos (Core Web Vitals).",
						"Organicé rituales de discovery con diseño y producto para elevar el NPS de 42 a 65.",
						"Implementé Playwright CI reduciendo fallos de regresión en un 70%.",
					},
				},
				{
					ID:      "exp-2",
					Company: "InnovaSoft",
					Role:    "Senior Frontend Engineer",
					Start:   "2018",
					End:     "2021",
					Current: false,
					Bullets: []string{
						"Diseñé librería de componentes accesibles reutilizada en 5 squads, reduciendo deuda UI 40%.",
						"Introduje métricas de error tracking en producción bajando incidencias críticas en 55%.",
					},
				},
			},
			Education: []Education{
				{
					ID:      "edu-1",
					School:  "Universidad Politécnica",
					Degree:  "Grado en Ingeniería Informática",
					Start:   "2011",
					End:     "2015",
					Details: "Proyecto final enfocado en visualización de datos en tiempo real.",
				},
			},
			Projects: []Project{
				{
					ID:           "proj-1",
					Name:         "Curriculum Builder",
					Role:         "Product Lead & Frontend",
					Description:  "Aplicación Next.js para generar CVs ATS con exportación A4, controles de diseño y analizador de ofertas.",
					Technologies: "Next.js 14, TypeScript, Tailwind, Playwright",
					Link:         "https://adalabs.dev/cv-builder",
				},
			},
		},
		UI: UIState{
			Template:   TemplateBest,
			FontPreset: 0,
			Accent:     "#0F6D53",
			BaseSizePt: 12,
			Compact:    false,
		},
		JDText: "",
	}
}
