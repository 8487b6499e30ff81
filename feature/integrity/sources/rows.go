package sources

import (
	"context"
	"fmt"

	"file-integrity/core/database"
	"file-integrity/core/fingerprint"

	"gorm.io/gorm"
)

type contentRow struct {
	Name    string
	Content []byte
}

// Rows reads nameColumn and contentColumn of every row in table and returns
// one entry per row, in name order. A NULL content hashes as empty content.
func Rows(ctx context.Context, db *gorm.DB, table, nameColumn, contentColumn string) ([]fingerprint.Entry, error) {
	if err := database.RequireColumns(db, table, nameColumn, contentColumn); err != nil {
		return nil, err
	}

	// Identifiers were validated by RequireColumns
	query := fmt.Sprintf("SELECT %s AS name, %s AS content FROM %s ORDER BY %s",
		nameColumn, contentColumn, table, nameColumn)

	var rows []contentRow
	if err := db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", table, err)
	}

	entries := make([]fingerprint.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, fingerprint.BytesEntry(r.Name, r.Content))
	}
	return entries, nil
}
