package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Template selectors understood by the renderer.
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateCompact = "compact"

	DefaultTemplate = TemplateClassic
)

// Templates lists every accepted template selector.
var Templates = []string{TemplateClassic, TemplateModern, TemplateCompact}

// Validation errors returned by Normalize.
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrMissingName     = errors.New("profile.name is required")
)

// Document is the full résumé submitted for rendering.
type Document struct {
	Template  string       `json:"template,omitempty" yaml:"template,omitempty" jsonschema:"enum=classic,enum=modern,enum=compact,default=classic" jsonschema_description:"Layout used by the renderer."`
	Profile   Profile      `json:"profile" yaml:"profile"`
	Work      []Work       `json:"work,omitempty" yaml:"work,omitempty"`
	Education []Education  `json:"education,omitempty" yaml:"education,omitempty"`
	Projects  []Project    `json:"projects,omitempty" yaml:"projects,omitempty"`
	Awards    []Award      `json:"awards,omitempty" yaml:"awards,omitempty"`
	Skills    []SkillGroup `json:"skills,omitempty" yaml:"skills,omitempty"`
	Headings  *Headings    `json:"headings,omitempty" yaml:"headings,omitempty" jsonschema_description:"Section title overrides, blank titles keep the template default."`
}

// Profile is the contact block printed at the top of the résumé.
type Profile struct {
	Name     string `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Links    []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

// Link is a labelled profile URL.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Work is one position. Dates here and in the other entries are free-form
// strings such as "2021-04" or "Present"; the renderer formats them.
type Work struct {
	Company    string   `json:"company" yaml:"company"`
	Position   string   `json:"position" yaml:"position"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate  string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Education is one degree or course of study.
type Education struct {
	Institution string   `json:"institution" yaml:"institution"`
	Degree      string   `json:"degree,omitempty" yaml:"degree,omitempty"`
	Field       string   `json:"field,omitempty" yaml:"field,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Score       string   `json:"score,omitempty" yaml:"score,omitempty"`
	Courses     []string `json:"courses,omitempty" yaml:"courses,omitempty"`
}

// Project is a personal or professional project.
type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Role        string   `json:"role,omitempty" yaml:"role,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	StartDate   string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Award is an honor or certification.
type Award struct {
	Title   string `json:"title" yaml:"title"`
	Awarder string `json:"awarder,omitempty" yaml:"awarder,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// SkillGroup is a named list of skill keywords.
type SkillGroup struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Headings overrides section titles.
type Headings struct {
	Profile   string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Work      string `json:"work,omitempty" yaml:"work,omitempty"`
	Education string `json:"education,omitempty" yaml:"education,omitempty"`
	Projects  string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Awards    string `json:"awards,omitempty" yaml:"awards,omitempty"`
	Skills    string `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Normalize fills the default template and checks required fields.
func (d *Document) Normalize() error {
	d.Template = strings.ToLower(strings.TrimSpace(d.Template))
	if d.Template == "" {
		d.Template = DefaultTemplate
	}
	if !slices.Contains(Templates, d.Template) {
		return fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownTemplate, d.Template, strings.Join(Templates, ", "))
	}

	if strings.TrimSpace(d.Profile.Name) == "" {
		return ErrMissingName
	}

	return nil
}
