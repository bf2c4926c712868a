// Package models holds the table of known model variants and the menu used
// to pick one.
package models

import "strings"

// DefaultModel is the identifier chosen when the user's menu choice is invalid.
const DefaultModel = "dolphin-llama3:70b"

// Descriptor describes one downloadable model variant.
type Descriptor struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Details     string `yaml:"details"`
}

// Registry is an ordered list of descriptors plus the identifier used as the
// fallback choice.
type Registry struct {
	Models  []Descriptor
	Default string
}

// DefaultRegistry returns the built-in model table.
func DefaultRegistry() Registry {
	return Registry{
		Default: DefaultModel,
		Models: []Descriptor{
			{Name: "dolphin-llama3:70b", Description: "Dolphin Llama3 70B", Details: "BEST OVERALL - Highest quality, excellent reasoning (~40GB RAM)"},
			{Name: "dolphin-mixtral:8x7b", Description: "Dolphin Mixtral 8x7B", Details: "EXCELLENT - Top reasoning & instruction following (~26GB RAM)"},
			{Name: "dolphin-llama3:34b", Description: "Dolphin Llama3 34B", Details: "HIGH QUALITY - Great balance of quality and speed (~20GB RAM)"},
			{Name: "dolphin-llama3:8b", Description: "Dolphin Llama3 8B", Details: "Best 8B model - High quality, fast responses (~8GB RAM)"},
			{Name: "wizardlm2:7b", Description: "WizardLM2 7B", Details: "Great for coding & complex instructions (~8GB RAM)"},
			{Name: "dolphin-mistral:7b", Description: "Dolphin Mistral 7B", Details: "Fast & reliable, good general purpose (~8GB RAM)"},
			{Name: "nous-hermes2-mixtral:8x7b", Description: "Nous Hermes 2 Mixtral 8x7B", Details: "Creative writing & roleplay focused (~26GB RAM)"},
			{Name: "nous-hermes2:34b", Description: "Nous Hermes 2 34B", Details: "Creative conversations, versatile (~20GB RAM)"},
			{Name: "openhermes:7b", Description: "OpenHermes 7B", Details: "Precise instruction following, good for tasks (~8GB RAM)"},
		},
	}
}

// Len returns the number of registered models.
func (r Registry) Len() int {
	return len(r.Models)
}

// Lookup finds a descriptor by identifier.
func (r Registry) Lookup(name string) (Descriptor, bool) {
	name = strings.TrimSpace(name)
	for _, m := range r.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Descriptor{}, false
}

// DefaultDescriptor returns the descriptor named by Default, or the first
// entry when Default is unset or unknown. The registry must not be empty.
func (r Registry) DefaultDescriptor() Descriptor {
	if d, ok := r.Lookup(r.Default); ok {
		return d
	}
	return r.Models[0]
}
