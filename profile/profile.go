// Package profile loads assembler settings from YAML (or JSON) files.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formats understood by the renderers.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatHex     = "hex"
	FormatListing = "listing"
)

// AsmProfile represents the configuration for an assembly target.
type AsmProfile struct {
	Name      string `yaml:"name"`
	TextBase  uint32 `yaml:"text_base"`
	MaxErrors int    `yaml:"max_errors"`
	Format    string `yaml:"format"`
}

// Default returns the profile used when no file is given.
func Default() *AsmProfile {
	return &AsmProfile{
		Name:   "default",
		Format: FormatText,
	}
}

// LoadProfile loads an assembler profile from a YAML file. Unset fields
// keep their defaults.
func LoadProfile(filename string) (*AsmProfile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	prof := Default()
	if err := yaml.NewDecoder(file).Decode(prof); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return prof, nil
}

// Validate checks the profile for values the assembler cannot use.
func (p *AsmProfile) Validate() error {
	if p.TextBase%4 != 0 {
		return fmt.Errorf("text_base 0x%x is not a multiple of 4", p.TextBase)
	}
	if p.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative")
	}
	switch p.Format {
	case FormatText, FormatJSON, FormatHex, FormatListing:
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
	return nil
}
