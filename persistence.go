package savset

import (
	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*curator)(nil)

// Persistence handles dataset persistence operations.
type Persistence interface {
	// Save writes the finalized dataset to a directory.
	Save(dir string) error
}

// Save writes the finalized dataset to dir: the record table plus the
// sidecar manifest. Saving before Finalize is an error.
func (c *curator) Save(dir string) error {
	if !c.ds.Finalized() {
		return errors.ErrNotFinalized
	}
	if err := c.ds.Save(dir); err != nil {
		return err
	}
	c.logger.Info().Str("dir", dir).Int("records", c.ds.Len()).Msg("Saved dataset")
	return nil
}

// Open loads a previously saved dataset from dir.
func Open(dir string) (*dataset.Dataset, error) {
	return dataset.Load(dir)
}
