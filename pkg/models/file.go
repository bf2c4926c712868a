package models

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// registryFile mirrors the YAML layout accepted by LoadFile:
//
//	default: dolphin-mistral:7b
//	models:
//	  - name: dolphin-mistral:7b
//	    description: Dolphin Mistral 7B
//	    details: Fast & reliable
type registryFile struct {
	Default string       `yaml:"default"`
	Models  []Descriptor `yaml:"models"`
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (Registry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, err
	}
	reg, err := parseRegistry(content)
	if err != nil {
		return Registry{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return reg, nil
}

// Load returns the registry at path, or the built-in table when path is empty.
func Load(path string) (Registry, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRegistry(), nil
	}
	return LoadFile(path)
}

func parseRegistry(content []byte) (Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return Registry{}, err
	}
	if len(f.Models) == 0 {
		return Registry{}, errors.New("no models defined")
	}

	seen := make(map[string]bool, len(f.Models))
	out := make([]Descriptor, 0, len(f.Models))
	for i, m := range f.Models {
		m.Name = strings.TrimSpace(m.Name)
		m.Description = strings.TrimSpace(m.Description)
		m.Details = strings.TrimSpace(m.Details)
		if m.Name == "" {
			return Registry{}, fmt.Errorf("model %d: missing name", i+1)
		}
		if seen[m.Name] {
			return Registry{}, fmt.Errorf("duplicate model %q", m.Name)
		}
		seen[m.Name] = true
		if m.Description == "" {
			m.Description = m.Name
		}
		out = append(out, m)
	}

	reg := Registry{Models: out, Default: strings.TrimSpace(f.Default)}
	if reg.Default != "" {
		if _, ok := reg.Lookup(reg.Default); !ok {
			return Registry{}, fmt.Errorf("default model %q is not listed", reg.Default)
		}
	}
	return reg, nil
}
