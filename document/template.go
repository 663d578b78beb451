package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats for Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown format")

// DefaultHeadings are the section titles the renderer uses when none are given.
func DefaultHeadings() Headings {
	return Headings{
		Profile:   "Profile",
		Work:      "Work Experience",
		Education: "Education",
		Projects:  "Projects",
		Awards:    "Awards",
		Skills:    "Skills",
	}
}

// Template returns a placeholder document with one sample entry per section.
func Template() Document {
	headings := DefaultHeadings()
	return Document{
		Template: DefaultTemplate,
		Profile: Profile{
			Name:     "Jane Doe",
			Title:    "Software Engineer",
			Email:    "jane.doe@example.com",
			Phone:    "+1 555 0100",
			Location: "Springfield",
			Website:  "https://example.com",
			Summary:  "One or two sentences about your experience and goals.",
			Links: []Link{
				{Label: "GitHub", URL: "https://github.com/janedoe"},
			},
		},
		Work: []Work{
			{
				Company:    "Example Corp",
				Position:   "Backend Engineer",
				Location:   "Remote",
				StartDate:  "2021-04",
				EndDate:    "Present",
				Summary:    "What the team does and what you own.",
				Highlights: []string{"An accomplishment with a measurable result."},
			},
		},
		Education: []Education{
			{
				Institution: "State University",
				Degree:      "B.Sc.",
				Field:       "Computer Science",
				StartDate:   "2016-09",
				EndDate:     "2020-06",
				Score:       "3.8/4.0",
				Courses:     []string{"Distributed Systems"},
			},
		},
		Projects: []Project{
			{
				Name:        "Side Project",
				Role:        "Author",
				URL:         "https://example.com/project",
				StartDate:   "2022-01",
				EndDate:     "2022-06",
				Description: "What it does and why it matters.",
				Highlights:  []string{"Notable feature or adoption figure."},
			},
		},
		Awards: []Award{
			{
				Title:   "Award Name",
				Awarder: "Awarding Organization",
				Date:    "2023-11",
				Summary: "Why you received it.",
			},
		},
		Skills: []SkillGroup{
			{Name: "Languages", Keywords: []string{"Go", "SQL"}},
		},
		Headings: &headings,
	}
}

// ParseFormat normalizes a format name, defaulting to JSON.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q, must be 'json' or 'yaml'", ErrUnknownFormat, format)
	}
}

// Encode serializes doc as indented JSON or YAML.
func Encode(doc Document, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	if f == FormatYAML {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out, nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return out, nil
}
