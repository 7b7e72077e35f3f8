package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/graph"
)

// Snapshot describes one exported copy of an atlas.
type Snapshot struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	AssetCount      int       `json:"asset_count"`
	EntityEdgeCount int       `json:"entity_edge_count"`
	AreaEdgeCount   int       `json:"area_edge_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store reads and writes atlas snapshots.
type Store struct {
	db *DB
}

// NewStore creates a new snapshot store.
func NewStore(d *DB) *Store {
	return &Store{db: d}
}

// Export writes the catalog, the deduplicated entity edges and the area
// edges of a in one transaction.
func (s *Store) Export(ctx context.Context, a *atlas.Atlas, title string) (*Snapshot, error) {
	snap := &Snapshot{
		ID:              uuid.NewString(),
		Title:           title,
		AssetCount:      a.Catalog().Len(),
		EntityEdgeCount: a.Entities().EdgeCount(),
		AreaEdgeCount:   a.Areas().EdgeCount(),
		CreatedAt:       time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, title, asset_count, entity_edge_count, area_edge_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Title, snap.AssetCount, snap.EntityEdgeCount, snap.AreaEdgeCount, snap.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	for i, asset := range a.Catalog().Assets() {
		if err := insertAsset(ctx, tx, snap.ID, i, asset); err != nil {
			return nil, err
		}
	}
	if err := insertEdges(ctx, tx, "entity_edges", snap.ID, a.Entities().Edges()); err != nil {
		return nil, err
	}
	if err := insertEdges(ctx, tx, "area_edges", snap.ID, a.Areas().Edges()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing export: %w", err)
	}
	return snap, nil
}

func insertAsset(ctx context.Context, tx *sql.Tx, snapID string, pos int, a catalog.Asset) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assets (snapshot_id, position, id, area, description, data_flow, business_impact)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snapID, pos, a.ID, a.Area, a.Description, a.DataFlow, a.BusinessImpact,
	); err != nil {
		return fmt.Errorf("inserting asset %q: %w", a.ID, err)
	}
	for i, f := range a.KeyFeatures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO asset_features (snapshot_id, asset_id, position, feature) VALUES (?, ?, ?, ?)`,
			snapID, a.ID, i, f,
		); err != nil {
			return fmt.Errorf("inserting feature of %q: %w", a.ID, err)
		}
	}
	for i, r := range a.RelatedSystems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO asset_related_systems (snapshot_id, asset_id, position, system) VALUES (?, ?, ?, ?)`,
			snapID, a.ID, i, r,
		); err != nil {
			return fmt.Errorf("inserting related system of %q: %w", a.ID, err)
		}
	}
	return nil
}

// insertEdges writes edges into table, which is one of two fixed names.
func insertEdges(ctx context.Context, tx *sql.Tx, table, snapID string, edges []graph.Edge) error {
	q := fmt.Sprintf(`INSERT INTO %s (snapshot_id, position, source, target) VALUES (?, ?, ?, ?)`, table)
	for i, e := range edges {
		if _, err := tx.ExecContext(ctx, q, snapID, i, e.Source, e.Target); err != nil {
			return fmt.Errorf("inserting %s %s -> %s: %w", table, e.Source, e.Target, err)
		}
	}
	return nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *Store) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	snap := &Snapshot{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, asset_count, entity_edge_count, area_edge_count, created_at
		 FROM snapshots WHERE id = ?`, id,
	).Scan(&snap.ID, &snap.Title, &snap.AssetCount, &snap.EntityEdgeCount, &snap.AreaEdgeCount, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting snapshot: %w", catalog.NotFound(id))
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, asset_count, entity_edge_count, area_edge_count, created_at
		 FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Title, &snap.AssetCount, &snap.EntityEdgeCount, &snap.AreaEdgeCount, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// AreaEdges returns the stored overview edges of a snapshot in graph order.
func (s *Store) AreaEdges(ctx context.Context, snapID string) ([]graph.Edge, error) {
	return s.edges(ctx, "area_edges", snapID)
}

// Definition rebuilds a catalog definition from a snapshot. Duplicate edges
// of the source definition were collapsed on export.
func (s *Store) Definition(ctx context.Context, snapID string) (*catalog.Definition, error) {
	if _, err := s.GetSnapshot(ctx, snapID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, area, description, data_flow, business_impact
		 FROM assets WHERE snapshot_id = ? ORDER BY position`, snapID)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	var def catalog.Definition
	for rows.Next() {
		var a catalog.Asset
		if err := rows.Scan(&a.ID, &a.Area, &a.Description, &a.DataFlow, &a.BusinessImpact); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		def.Assets = append(def.Assets, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	for i := range def.Assets {
		a := &def.Assets[i]
		if a.KeyFeatures, err = s.strings(ctx,
			`SELECT feature FROM asset_features WHERE snapshot_id = ? AND asset_id = ? ORDER BY position`,
			snapID, a.ID); err != nil {
			return nil, err
		}
		if a.RelatedSystems, err = s.strings(ctx,
			`SELECT system FROM asset_related_systems WHERE snapshot_id = ? AND asset_id = ? ORDER BY position`,
			snapID, a.ID); err != nil {
			return nil, err
		}
	}

	edges, err := s.edges(ctx, "entity_edges", snapID)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		def.Edges = append(def.Edges, catalog.EdgeSpec{Source: e.Source, Target: e.Target})
	}
	return &def, nil
}

func (s *Store) edges(ctx context.Context, table, snapID string) ([]graph.Edge, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT source, target FROM %s WHERE snapshot_id = ? ORDER BY position`, table), snapID)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer rows.Close()

	var out []graph.Edge
	for rows.Next() {
		var e graph.Edge
		if err := rows.Scan(&e.Source, &e.Target); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
