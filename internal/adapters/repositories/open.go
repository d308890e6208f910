package repositories

import (
	"context"
	"hotspot-finder-service/internal/platform/db"
	"hotspot-finder-service/internal/ports"

	"github.com/rotisserie/eris"
)

// CatalogOptions selects and locates the hotspot catalog store.
type CatalogOptions struct {
	Driver      string // "sqlite" or "postgres"
	Path        string
	DatabaseURL string
}

// OpenCatalog opens the configured catalog store and ensures its schema exists.
// The returned close func releases the underlying connections.
func OpenCatalog(ctx context.Context, opts CatalogOptions) (ports.HotspotCatalog, func(), error) {
	switch opts.Driver {
	case "sqlite":
		conn, err := db.OpenSQLite(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return NewSqliteHotspotRepository(conn), func() { _ = conn.Close() }, nil

	case "postgres":
		pool, err := db.OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := InitPostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPostgresHotspotRepository(pool), pool.Close, nil

	default:
		return nil, nil, eris.Errorf("open catalog: unknown driver %q", opts.Driver)
	}
}

// SeedFromFile loads a seed file into the catalog and returns the number of hotspots written.
func SeedFromFile(ctx context.Context, catalog ports.HotspotCatalog, path string) (int, error) {
	hotspots, err := ReadSeedFile(path)
	if err != nil {
		return 0, err
	}
	if err := catalog.SeedHotspots(ctx, hotspots); err != nil {
		return 0, err
	}
	return len(hotspots), nil
}
