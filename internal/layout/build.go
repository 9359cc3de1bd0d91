package layout

import (
	"fmt"
)

const defaultColor = "white"

// Build turns a layout configuration into the two hand layouts. All parallel
// matrices must have the same number of rows and the same row lengths.
// Nothing is returned on error.
func Build(cfg Config) (Hands, error) {
	rows := len(cfg.Hands)
	lengths := make([]int, rows)
	for r, row := range cfg.Hands {
		lengths[r] = len(row)
	}
	if err := checkShape(lengths, len(cfg.Symbols), func(r int) int { return len(cfg.Symbols[r]) }); err != nil {
		return Hands{}, err
	}
	if err := checkShape(lengths, len(cfg.KeyIndices), func(r int) int { return len(cfg.KeyIndices[r]) }); err != nil {
		return Hands{}, err
	}
	for _, m := range [][][]string{cfg.FingerMatrix, cfg.KeyCategoryMatrix, cfg.ColorMatrix} {
		if m == nil {
			continue
		}
		if err := checkShape(lengths, len(m), func(r int) int { return len(m[r]) }); err != nil {
			return Hands{}, err
		}
	}
	if cfg.MatrixPositions != nil {
		if err := checkShape(lengths, len(cfg.MatrixPositions), func(r int) int { return len(cfg.MatrixPositions[r]) }); err != nil {
			return Hands{}, err
		}
	}

	hands := Hands{Left: NewHand(Left), Right: NewHand(Right)}
	for r := 0; r < rows; r++ {
		for c := 0; c < lengths[r]; c++ {
			var hand *Hand
			switch cfg.Hands[r][c] {
			case "Left":
				hand = hands.Left
			case "Right":
				hand = hands.Right
			default:
				return Hands{}, fmt.Errorf("%w: invalid hand %q", ErrInvalidConfig, cfg.Hands[r][c])
			}
			key := cfg.KeyIndices[r][c]
			hand.Symbols[key] = cfg.Symbols[r][c]

			if cfg.FingerMatrix != nil {
				if letter := cfg.FingerMatrix[r][c]; letter != "" {
					finger, err := ParseFinger(letter)
					if err != nil {
						return Hands{}, fmt.Errorf("%w: row %d cell %d: %v", ErrInvalidConfig, r, c, err)
					}
					hand.Fingers[key] = finger
				}
			}
			if cfg.KeyCategoryMatrix != nil {
				if category := cfg.KeyCategoryMatrix[r][c]; category != "" {
					hand.Categories[key] = category
				}
			}
			if cfg.ColorMapping != nil {
				name := ""
				if cfg.ColorMatrix != nil {
					name = cfg.ColorMatrix[r][c]
				}
				color, ok := cfg.ColorMapping[name]
				if !ok {
					color = defaultColor
				}
				hand.Colors[key] = color
			}
			if cfg.MatrixPositions != nil {
				cell := cfg.MatrixPositions[r][c]
				if len(cell) == 0 {
					continue
				}
				if len(cell) != 2 {
					return Hands{}, fmt.Errorf("%w: invalid matrix position %v", ErrInvalidConfig, cell)
				}
				hand.Positions[key] = Position{Col: cell[0], Row: cell[1]}
			}
		}
	}
	return hands, nil
}

func checkShape(lengths []int, rows int, rowLen func(int) int) error {
	if rows != len(lengths) {
		return fmt.Errorf("%w: one block has more rows than others", ErrInvalidConfig)
	}
	for r, want := range lengths {
		if rowLen(r) != want {
			return fmt.Errorf("%w: one row is longer or shorter than others", ErrInvalidConfig)
		}
	}
	return nil
}
