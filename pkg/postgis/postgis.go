package postgis

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/fieldtrial/plotshape/pkg/models"
)

// Store writes plot polygons into a PostGIS table so downstream tools
// (field GIS, harvest tracking) can query them spatially.
type Store struct {
	db   *sql.DB
	srid int
}

// NewStore opens a PostGIS connection. srid is the spatial reference of
// the plot polygons (0 when the run had no UTM zone).
func NewStore(host, user, password, dbname string, port, srid int) (*Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db, srid: srid}, nil
}

// InitSchema (re)creates the plot_polygons table.
func (s *Store) InitSchema() error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS plot_polygons;`,
		fmt.Sprintf(`CREATE TABLE plot_polygons (
			id SERIAL PRIMARY KEY,
			label TEXT NOT NULL,
			buffered BOOLEAN NOT NULL,
			boundary GEOMETRY(POLYGON, %d)
		);`, s.srid),
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// CreateSpatialIndex creates a GIST index on the boundary column.
func (s *Store) CreateSpatialIndex() error {
	if _, err := s.db.Exec(`CREATE INDEX idx_plot_polygons_boundary ON plot_polygons USING GIST(boundary);`); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}
	if _, err := s.db.Exec("ANALYZE plot_polygons;"); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}
	return nil
}

// BulkInsert inserts polygons in a single transaction, committing every
// batchSize rows so a large trial does not hold one long transaction.
func (s *Store) BulkInsert(polygons []models.PolygonRecord) error {
	const batchSize = 10000

	stmt, err := s.db.Prepare(`
		INSERT INTO plot_polygons (label, buffered, boundary)
		VALUES ($1, $2, ST_GeomFromText($3, $4))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	txStmt := tx.Stmt(stmt)

	for i, p := range polygons {
		if _, err := txStmt.Exec(p.Label, p.Buffered, WKT(p), s.srid); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert plot %s: %w", p.Label, err)
		}

		if (i+1)%batchSize == 0 {
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}
			tx, err = s.db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin new transaction: %w", err)
			}
			txStmt = tx.Stmt(stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final batch: %w", err)
	}
	return nil
}

// QueryBox returns the labels of plots whose boundary intersects the
// given easting/northing envelope.
func (s *Store) QueryBox(minE, minN, maxE, maxN float64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT label
		FROM plot_polygons
		WHERE boundary && ST_MakeEnvelope($1, $2, $3, $4, $5)
		ORDER BY id
	`, minE, minN, maxE, maxN, s.srid)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return labels, nil
}

// Locate returns the labels of plots containing the given point.
func (s *Store) Locate(easting, northing float64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT label
		FROM plot_polygons
		WHERE ST_Contains(boundary, ST_SetSRID(ST_MakePoint($1, $2), $3))
		ORDER BY id
	`, easting, northing, s.srid)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return labels, nil
}

// Count returns the number of stored polygons.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM plot_polygons").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count polygons: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// WKT renders the polygon ring as a well-known-text POLYGON.
func WKT(p models.PolygonRecord) string {
	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, pt := range p.Ring {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(pt.Easting, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(pt.Northing, 'f', -1, 64))
	}
	b.WriteString("))")
	return b.String()
}
