package checks

import (
	"fmt"
	"sort"
	"strings"

	"catalog-manager/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ServerReport strictly types the result of a server integrity check.
type ServerReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingTable   bool     `json:"missing_table"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckServerIntegrity verifies the database schema using the gorm models as the source of truth.
// Column types are only compared on mysql, the dialect the type tags are written for.
func CheckServerIntegrity(db *gorm.DB, models ...any) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}
	checkTypes := report.Driver == "mysql"

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		if len(actual) == 0 {
			tbl.MissingTable = true
			tbl.Status = "error"
			report.Matched = false
			report.Tables[table] = tbl
			continue
		}

		byName := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			byName[col.Field] = col
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			col, ok := byName[strings.ToLower(field.DBName)]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
				tbl.Status = "error"
				report.Matched = false
				continue
			}
			if !checkTypes {
				continue
			}
			if expected := baseType(field); expected != "" && !strings.HasPrefix(col.Type, expected) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", field.DBName, expected, col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}
		sort.Strings(tbl.MissingColumns)
		report.Tables[table] = tbl
	}

	return report, nil
}

// baseType returns the lower-cased type name of an explicit "type:" tag without its
// length, so "char(36)" becomes "char".
func baseType(field *schema.Field) string {
	t := strings.ToLower(strings.TrimSpace(field.TagSettings["TYPE"]))
	if i := strings.IndexAny(t, "( "); i >= 0 {
		t = t[:i]
	}
	return t
}
