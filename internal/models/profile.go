// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedProfile is returned when a profile is missing required fields.
var ErrMalformedProfile = errors.New("malformed aesthetic profile")

// ColorSwatch is one entry of a profile's palette.
type ColorSwatch struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// AestheticProfile is the structured description produced by the vision
// extractor. The ranking pipeline only reads it.
type AestheticProfile struct {
	Name          string              `json:"name"`
	Mood          string              `json:"mood"`
	ColorPalette  []ColorSwatch       `json:"color_palette"`
	Textures      []string            `json:"textures"`
	KeyPieces     []string            `json:"key_pieces"`
	Avoid         []string            `json:"avoid"`
	TargetBrands  map[string][]string `json:"target_brands,omitempty"` // tier name -> brands
	SearchQueries []string            `json:"search_queries"`
}

// Validate checks the fields the pipeline cannot work without.
func (p *AestheticProfile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", ErrMalformedProfile)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrMalformedProfile)
	}
	return nil
}

// ColorNames returns the palette names in order, skipping blanks.
func (p *AestheticProfile) ColorNames() []string {
	names := make([]string, 0, len(p.ColorPalette))
	for _, c := range p.ColorPalette {
		if n := strings.TrimSpace(c.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}
