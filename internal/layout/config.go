// Package layout holds the per-hand keyboard model and builds it from a
// layout configuration.
package layout

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every layout configuration error.
var ErrInvalidConfig = errors.New("invalid layout config")

var configValidate = validator.New()

// Config is the YAML layout configuration. All matrices are parallel: row r,
// cell c of every matrix describes the same physical key.
type Config struct {
	KeyIndices        [][]int           `yaml:"key_indices" validate:"required,min=1,dive,min=1"`
	Hands             [][]string        `yaml:"hands" validate:"required,min=1,dive,min=1,dive,oneof=Left Right"`
	Symbols           [][]string        `yaml:"symbols" validate:"required,min=1,dive,min=1"`
	FingerMatrix      [][]string        `yaml:"finger_matrix,omitempty"`
	KeyCategoryMatrix [][]string        `yaml:"key_category_matrix,omitempty"`
	ColorMatrix       [][]string        `yaml:"color_matrix,omitempty"`
	ColorMapping      map[string]string `yaml:"color_mapping,omitempty"`
	MatrixPositions   [][][]int         `yaml:"matrix_positions,omitempty"`
}

// LoadFile reads and validates a YAML layout configuration.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read layout: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML layout configuration.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks presence of the required matrices and the hand designators.
// Shape consistency across matrices is checked by Build.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "oneof" {
				return fmt.Errorf("%w: invalid hand %q", ErrInvalidConfig, fmt.Sprint(fe.Value()))
			}
			return fmt.Errorf("%w: field %s failed %q check", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
