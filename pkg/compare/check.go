package compare

import (
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// CheckIndices validates a batch of positions against a column length once,
// before they are fed to the unchecked Eq and Cmp in a tight loop.
func CheckIndices(length int, idx ...int) error {
	for i, v := range idx {
		if v < 0 || v >= length {
			return strataerrors.Newf(strataerrors.ErrorTypeOutOfRange, "index %d out of range [0, %d)", v, length).
				WithDetail("batch_position", i)
		}
	}
	return nil
}
