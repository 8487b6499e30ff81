package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE documents (id INTEGER PRIMARY KEY, Name TEXT, body BLOB)").Error)
	return db
}

func TestGetTableColumns(t *testing.T) {
	db := setupSQLite(t)

	columns, err := GetTableColumns(db, "documents")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Field: "id", Type: "integer"},
		{Field: "name", Type: "text"},
		{Field: "body", Type: "blob"},
	}, columns)

	// PRAGMA table_info yields nothing for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "INT(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("path", "VARCHAR(255)", "NO", "", nil, "").
		AddRow("data", "LONGBLOB", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `files`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "files")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Field: "id", Type: "int(11)"},
		{Field: "path", Type: "varchar(255)"},
		{Field: "data", Type: "longblob"},
	}, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireColumns(t *testing.T) {
	db := setupSQLite(t)

	tests := []struct {
		name     string
		table    string
		columns  []string
		wantErr  error
		contains string
	}{
		{"All present", "documents", []string{"name", "body"}, nil, ""},
		{"Case insensitive", "documents", []string{"NAME"}, nil, ""},
		{"Missing column", "documents", []string{"name", "content"}, ErrMissingColumn, "content"},
		{"Unknown table", "nothing", []string{"name"}, ErrMissingColumn, "nothing"},
		{"Injected table", "documents; DROP TABLE x", []string{"name"}, ErrInvalidIdentifier, ""},
		{"Injected column", "documents", []string{"name AS x"}, ErrInvalidIdentifier, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireColumns(db, tt.table, tt.columns...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
