// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/bnema/layoutcore/internal/domain/entity"
)

// validateConfig performs range and enum validation of configuration values.
func validateConfig(cfg entity.Config) error {
	var errs []string

	if cfg.Gap < 0 {
		errs = append(errs, "gap must be non-negative")
	}
	if cfg.FontHeight < 1 {
		errs = append(errs, "font_height must be at least 1")
	}

	switch cfg.DefaultLayout {
	case entity.LayoutHoriz, entity.LayoutVert, entity.LayoutTabbed, entity.LayoutStacked,
		entity.LayoutAutoLeft, entity.LayoutAutoRight, entity.LayoutAutoTop, entity.LayoutAutoBottom:
	default:
		errs = append(errs, fmt.Sprintf("default_layout must name a known layout (got: %s)", cfg.DefaultLayout))
	}

	switch cfg.DefaultOrientation {
	case entity.LayoutHoriz, entity.LayoutVert:
	default:
		errs = append(errs, fmt.Sprintf("default_orientation must be horiz or vert (got: %s)", cfg.DefaultOrientation))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
