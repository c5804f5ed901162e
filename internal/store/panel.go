package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/hasta/internal/feed"
)

// defaultDeck is the color deck seeded into an empty feed so the demo
// has something to page through on first run.
var defaultDeck = []string{"#E63946", "#F4A261", "#2A9D8F", "#264653", "#9B5DE5"}

// PanelRepository provides CRUD operations for feed panels.
type PanelRepository struct {
	db *sql.DB
}

// Panels returns the panel repository for this store.
func (s *Store) Panels() *PanelRepository {
	return &PanelRepository{db: s.db}
}

// Create inserts a new panel at the end of the deck. An empty ID is
// replaced with a fresh UUID; Position is assigned.
func (r *PanelRepository) Create(p *feed.Panel) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	var maxPos sql.NullInt64
	if err := r.db.QueryRow(`SELECT MAX(position) FROM panels`).Scan(&maxPos); err != nil {
		return err
	}
	p.Position = 0
	if maxPos.Valid {
		p.Position = int(maxPos.Int64) + 1
	}

	_, err := r.db.Exec(
		`INSERT INTO panels (id, position, kind, color, media_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Position, string(p.Kind), p.Color, p.MediaURL, p.CreatedAt,
	)
	return err
}

// GetByID retrieves a panel by its ID.
func (r *PanelRepository) GetByID(id string) (*feed.Panel, error) {
	p := &feed.Panel{}
	var kind string

	err := r.db.QueryRow(
		`SELECT id, position, kind, color, media_url, created_at
		 FROM panels WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Position, &kind, &p.Color, &p.MediaURL, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Kind = feed.PanelKind(kind)
	return p, nil
}

// List retrieves all panels in feed order.
func (r *PanelRepository) List() ([]feed.Panel, error) {
	rows, err := r.db.Query(
		`SELECT id, position, kind, color, media_url, created_at
		 FROM panels ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var panels []feed.Panel
	for rows.Next() {
		var p feed.Panel
		var kind string

		if err := rows.Scan(&p.ID, &p.Position, &kind, &p.Color, &p.MediaURL, &p.CreatedAt); err != nil {
			return nil, err
		}

		p.Kind = feed.PanelKind(kind)
		panels = append(panels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return panels, nil
}

// Update updates a panel's kind, color, and media URL.
func (r *PanelRepository) Update(p *feed.Panel) error {
	result, err := r.db.Exec(
		`UPDATE panels SET kind = ?, color = ?, media_url = ? WHERE id = ?`,
		string(p.Kind), p.Color, p.MediaURL, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a panel and compacts the remaining positions so the
// deck stays contiguous.
func (r *PanelRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM panels WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := compactPositions(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// Reorder assigns positions according to the given ID order. Every panel
// in the deck must appear exactly once.
func (r *PanelRepository) Reorder(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate panel id %q in reorder", id)
		}
		seen[id] = struct{}{}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM panels`).Scan(&count); err != nil {
		return err
	}
	if count != len(ids) {
		return errors.New("reorder must include every panel exactly once")
	}

	// Two passes: unique position index means direct updates can collide.
	for i, id := range ids {
		result, err := tx.Exec(`UPDATE panels SET position = ? WHERE id = ?`, -(i + 1), id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	if _, err := tx.Exec(`UPDATE panels SET position = -position - 1`); err != nil {
		return err
	}

	return tx.Commit()
}

// SeedDefaults inserts the default color deck when the feed is empty.
func (r *PanelRepository) SeedDefaults() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM panels`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, color := range defaultDeck {
		_, err := tx.Exec(
			`INSERT INTO panels (id, position, kind, color) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), i, string(feed.KindColor), color,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// compactPositions rewrites positions to 0..n-1 preserving order.
func compactPositions(tx *sql.Tx) error {
	rows, err := tx.Query(`SELECT id FROM panels ORDER BY position`)
	if err != nil {
		return err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE panels SET position = ? WHERE id = ?`, -(i + 1), id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE panels SET position = -position - 1`); err != nil {
		return err
	}

	return nil
}
