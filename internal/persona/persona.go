// Package persona holds the chatbot's greeting, personality and user-facing message strings.
package persona

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var defaultYAML []byte

// Personality describes how the assistant presents itself.
type Personality struct {
	Name          string `yaml:"name" json:"name"`
	Tone          string `yaml:"tone" json:"tone"`
	Expertise     string `yaml:"expertise" json:"expertise"`
	ResponseStyle string `yaml:"response_style" json:"response_style"`
}

// PlatformContext describes the Zer3aZ platform to clients.
type PlatformContext struct {
	Name         string   `yaml:"name" json:"name"`
	Features     []string `yaml:"features" json:"features"`
	ClimateZones []string `yaml:"climate_zones" json:"climate_zones"`
}

// Messages are canned replies.
type Messages struct {
	GeneralHelp string `yaml:"general_help"`
	Fallback    string `yaml:"fallback"`
	Reset       string `yaml:"reset"`
}

// Errors are user-facing error strings.
type Errors struct {
	MessageRequired   string `yaml:"message_required"`
	ReportIDsRequired string `yaml:"report_ids_required"`
	PlantNotFound     string `yaml:"plant_not_found"`
	ToolNotFound      string `yaml:"tool_not_found"`
	RateLimited       string `yaml:"rate_limited"`
	Unauthorized      string `yaml:"unauthorized"`
	Internal          string `yaml:"internal"`
}

// Persona is the full set of presentation strings.
type Persona struct {
	InitialGreeting string          `yaml:"initial_greeting"`
	Personality     Personality     `yaml:"personality"`
	PlatformContext PlatformContext `yaml:"platform_context"`
	Messages        Messages        `yaml:"messages"`
	Errors          Errors          `yaml:"errors"`
}

// Parse decodes a persona document.
func Parse(data []byte) (*Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse persona: %w", err)
	}
	if p.InitialGreeting == "" {
		return nil, fmt.Errorf("parse persona: initial_greeting is required")
	}
	return &p, nil
}

// Default returns the embedded persona. It panics if the embedded document is invalid.
func Default() *Persona {
	p, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return p
}

// ToolNotFound formats the unknown-tool error for name.
func (p *Persona) ToolNotFound(name string) string {
	return fmt.Sprintf(p.Errors.ToolNotFound, name)
}
