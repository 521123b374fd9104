package bundle

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// ExportSQLite writes result into the database at path, replacing any rows
// left by an earlier export. The whole export is one transaction.
func ExportSQLite(ctx context.Context, path string, result *assembler.Result) error {
	if err := result.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.WrapResource("open", "database", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.WrapResource("create", "schema", path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("begin", "transaction", path, err)
	}
	if err := insertAll(ctx, tx, result); err != nil {
		_ = tx.Rollback()
		return errors.WrapResource("export", "database", path, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.WrapResource("commit", "transaction", path, err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, result *assembler.Result) error {
	for _, table := range []string{"stations", "routes", "lines"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, f := range result.Features {
		alts := f.AlternateNames
		if alts == nil {
			alts = []string{}
		}
		altJSON, err := json.Marshal(alts)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stations (id, name, line, lon, lat, station, agency, alternate_names)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Line, f.Coordinate.Lon, f.Coordinate.Lat, f.Station, f.Agency, string(altJSON),
		); err != nil {
			return err
		}
	}

	for _, r := range result.Routes {
		for seq, p := range r.Points {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO routes (line, segment, seq, lon, lat) VALUES (?, ?, ?, ?, ?)`,
				r.Line, r.Segment, seq, p.Lon, p.Lat,
			); err != nil {
				return err
			}
		}
	}

	for order, id := range result.LineOrder {
		meta := result.Lines[id]
		name := meta.Name
		if name == "" {
			name = id
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lines (id, name, color, background_color, text_color, ord, stations)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, name, meta.Color, meta.BackgroundColor, meta.TextColor, order, result.StationsPerLine[id],
		); err != nil {
			return err
		}
	}
	return nil
}
