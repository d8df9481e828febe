package growth

import (
	"github.com/matzehuels/inflate/pkg/errors"
)

// Request holds the physical inputs of one solve.
type Request struct {
	FirstCellHeight float64 `json:"first_cell_height"` // height of the wall-adjacent cell
	Layers          float64 `json:"layers"`            // number of inflation layers, >= 1
	TotalHeight     float64 `json:"total_height"`      // target height of the whole stack
}

// Validate checks the request invariants. It returns an
// errors.ErrCodeInvalidInput error describing the first violation found.
func (r Request) Validate() error {
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "first cell height", r.FirstCellHeight); err != nil {
		return err
	}
	if err := errors.ValidateAtLeast(errors.ErrCodeInvalidInput, "layers", r.Layers, 1); err != nil {
		return err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "total height", r.TotalHeight); err != nil {
		return err
	}
	if r.TotalHeight <= r.FirstCellHeight {
		return errors.New(errors.ErrCodeInvalidInput,
			"total height (%g) must exceed first cell height (%g)", r.TotalHeight, r.FirstCellHeight)
	}
	return nil
}
