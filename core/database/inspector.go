package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column as the database reports it.
type ColumnInfo struct {
	Field    string
	Type     string
	Nullable bool
}

// GetTableColumns retrieves the column definitions for a given table. A missing table
// yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	m := db.Migrator()
	if !m.HasTable(tableName) {
		return nil, nil
	}

	types, err := m.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		nullable, _ := ct.Nullable()
		columns = append(columns, ColumnInfo{
			Field:    strings.ToLower(ct.Name()),
			Type:     strings.ToLower(ct.DatabaseTypeName()),
			Nullable: nullable,
		})
	}
	return columns, nil
}

// SchemaIssue is a difference between a model and the live schema.
type SchemaIssue struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
	Reason string `json:"reason"`
}

// VerifySchema compares the tables and columns gorm expects for models with the live
// schema. It reports missing tables and missing columns; extra columns are ignored.
func VerifySchema(db *gorm.DB, models ...any) ([]SchemaIssue, error) {
	var issues []SchemaIssue
	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		columns, err := GetTableColumns(db, table)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			issues = append(issues, SchemaIssue{Table: table, Reason: "table missing"})
			continue
		}

		present := make(map[string]bool, len(columns))
		for _, c := range columns {
			present[c.Field] = true
		}
		for _, name := range stmt.Schema.DBNames {
			if !present[strings.ToLower(name)] {
				issues = append(issues, SchemaIssue{Table: table, Column: name, Reason: "column missing"})
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Table != issues[j].Table {
			return issues[i].Table < issues[j].Table
		}
		return issues[i].Column < issues[j].Column
	})
	return issues, nil
}
