package app

import (
	"context"
	"fmt"

	"github.com/five82/vocab/internal/coalesce"
	"github.com/five82/vocab/internal/config"
	"github.com/five82/vocab/internal/prefs"
	"github.com/five82/vocab/internal/sqlstore"
	"github.com/five82/vocab/internal/state"
)

// openStore returns the configured backend and a func that releases it.
func openStore(ctx context.Context, cfg config.StoreConfig) (coalesce.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlstore.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendTOML:
		s, err := prefs.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendMemory:
		return &state.Store{}, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
