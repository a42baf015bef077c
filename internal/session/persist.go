package session

import (
	"context"
	"errors"

	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/store"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

// Persister is satisfied by *store.Store.
type Persister interface {
	Save(key string, st table.State) error
	Load(key string) (table.State, error)
}

// RestoreFrom applies the state saved under key, if any.
func (s *Session) RestoreFrom(p Persister, key string) (bool, error) {
	st, err := p.Load(key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.Restore(st)
	return true, nil
}

func (s *Session) SaveTo(p Persister, key string) error {
	return p.Save(key, s.tbl.State())
}

// Reload fetches fresh rows. The columns stay as they were when the table
// was built; cells of columns the source added since are not shown.
func (s *Session) Reload(ctx context.Context, l source.Loader) (*source.Dataset, error) {
	ds, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.SetRows(ds.Rows)
	return ds, nil
}
