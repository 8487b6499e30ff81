package integrity

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"file-integrity/core/database"
	"file-integrity/core/fingerprint"
	"file-integrity/core/reconcile"
	"file-integrity/core/report"
	"file-integrity/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testConfig = Config{
	Workers:                 4,
	BaselineCacheTTLSeconds: 300,
	MaxUploadMB:             1,
	BaselinePrefix:          "baselines/",
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, errors.New("disk error") }

func byteEntries(pairs ...string) []fingerprint.Entry {
	var out []fingerprint.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, fingerprint.BytesEntry(pairs[i], []byte(pairs[i+1])))
	}
	return out
}

func TestService_Generate(t *testing.T) {
	svc := NewService(nil, "", zap.NewNop(), nil, testConfig)

	in := append(byteEntries("b.txt", "bravo", "a.txt", "alpha"),
		fingerprint.ReaderEntry("broken.bin", failingReader{}))

	result := svc.Generate(context.Background(), in)

	assert.Equal(t, []fingerprint.Record{
		{Name: "a.txt", Digest: fingerprint.Hash([]byte("alpha"))},
		{Name: "b.txt", Digest: fingerprint.Hash([]byte("bravo"))},
	}, result.Fingerprints)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.bin", result.Errors[0].Filename)
	assert.Contains(t, result.Errors[0].Error, "disk error")
	assert.Len(t, result.Set, 2)
}

func TestService_Compare(t *testing.T) {
	svc := NewService(nil, "", zap.NewNop(), nil, testConfig)
	ctx := context.Background()

	t.Run("Classifies every name", func(t *testing.T) {
		baseline := "filename,sha256\n" +
			"same.txt," + fingerprint.Hash([]byte("same")) + "\n" +
			"edited.txt," + fingerprint.Hash([]byte("old")) + "\n" +
			"gone.txt," + fingerprint.Hash([]byte("gone")) + "\n"

		result, err := svc.Compare(ctx, strings.NewReader(baseline),
			byteEntries("same.txt", "same", "edited.txt", "new content", "added.txt", "added"))
		require.NoError(t, err)

		statuses := map[string]reconcile.Status{}
		for _, r := range result.Results {
			statuses[r.Name] = r.Status
		}
		assert.Equal(t, map[string]reconcile.Status{
			"added.txt":  reconcile.StatusNew,
			"edited.txt": reconcile.StatusModified,
			"gone.txt":   reconcile.StatusMissing,
			"same.txt":   reconcile.StatusUnchanged,
		}, statuses)
		assert.Equal(t, reconcile.Summary{Total: 4, Unchanged: 1, Modified: 1, New: 1, Missing: 1}, result.Summary)
		assert.Empty(t, result.Errors)
	})

	t.Run("Malformed baseline aborts before hashing", func(t *testing.T) {
		var opened atomic.Int32
		probe := fingerprint.Entry{Name: "x", Open: func(ctx context.Context) (io.ReadCloser, error) {
			opened.Add(1)
			return io.NopCloser(strings.NewReader("x")), nil
		}}

		result, err := svc.Compare(ctx, strings.NewReader("name,digest\nx,abc\n"), []fingerprint.Entry{probe})
		assert.ErrorIs(t, err, report.ErrMalformedBaseline)
		assert.Nil(t, result)
		assert.Zero(t, opened.Load())
	})

	t.Run("Unparseable baseline", func(t *testing.T) {
		_, err := svc.Compare(ctx, strings.NewReader("\"open quote"), byteEntries("x", "x"))
		assert.ErrorIs(t, err, report.ErrParseFailure)
	})

	t.Run("Read failures are reported alongside", func(t *testing.T) {
		in := []fingerprint.Entry{fingerprint.ReaderEntry("a.txt", failingReader{})}
		result, err := svc.Compare(ctx, strings.NewReader("filename,sha256\na.txt,abc\n"), in)
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, reconcile.StatusMissing, result.Results[0].Status)
	})
}

func TestService_CompareStored(t *testing.T) {
	ctx := context.Background()
	baseline := "filename,sha256\na.txt," + fingerprint.Hash([]byte("alpha")) + "\n"

	t.Run("Loads once within TTL", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "baselines/release.csv", minio.GetObjectOptions{}).
			Return(func(string) io.ReadCloser { return io.NopCloser(strings.NewReader(baseline)) }, nil).Once()
		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)

		for i := 0; i < 3; i++ {
			result, err := svc.CompareStored(ctx, "release", byteEntries("a.txt", "alpha"))
			require.NoError(t, err)
			assert.Equal(t, reconcile.Summary{Total: 1, Unchanged: 1}, result.Summary)
		}
		client.AssertExpectations(t)
	})

	t.Run("Missing object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "baselines/nope.csv", minio.GetObjectOptions{}).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."})
		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)

		_, err := svc.CompareStored(ctx, "nope.csv", byteEntries("a.txt", "alpha"))
		assert.ErrorIs(t, err, ErrBaselineNotFound)
	})

	t.Run("Missing object detected on read", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "baselines/lazy.csv", minio.GetObjectOptions{}).
			Return(io.NopCloser(errReader{minio.ErrorResponse{Code: "NoSuchKey"}}), nil)
		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)

		_, err := svc.CompareStored(ctx, "lazy", byteEntries("a.txt", "alpha"))
		assert.ErrorIs(t, err, ErrBaselineNotFound)
	})

	t.Run("Malformed stored baseline is not cached", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "baselines/bad.csv", minio.GetObjectOptions{}).
			Return(func(string) io.ReadCloser { return io.NopCloser(strings.NewReader("filename\na.txt\n")) }, nil)
		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)

		for i := 0; i < 2; i++ {
			_, err := svc.CompareStored(ctx, "bad", byteEntries("a.txt", "alpha"))
			assert.ErrorIs(t, err, report.ErrMalformedBaseline)
		}
		client.AssertNumberOfCalls(t, "GetObject", 2)
	})

	t.Run("Storage not configured", func(t *testing.T) {
		svc := NewService(nil, "", zap.NewNop(), nil, testConfig)
		_, err := svc.CompareStored(ctx, "release", nil)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	set := fingerprint.Set{"a.txt": fingerprint.Hash([]byte("alpha"))}

	t.Run("Uploads CSV", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)

		var uploaded string
		client.On("PutObject", ctx, "bucket", "baselines/release.csv", mock.Anything, mock.AnythingOfType("int64"),
			minio.PutObjectOptions{ContentType: "text/csv"}).
			Run(func(args mock.Arguments) {
				data, _ := io.ReadAll(args.Get(3).(io.Reader))
				uploaded = string(data)
			}).
			Return(minio.UploadInfo{}, nil)

		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)
		require.NoError(t, svc.Export(ctx, "baselines/release.csv", set))

		parsed, err := report.ReadFingerprints(strings.NewReader(uploaded))
		require.NoError(t, err)
		assert.Equal(t, set, parsed)
	})

	t.Run("Upload fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)
		client.On("PutObject", ctx, "bucket", "k.csv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota exceeded"))

		svc := NewService(client, "bucket", zap.NewNop(), nil, testConfig)
		assert.ErrorContains(t, svc.Export(ctx, "k.csv", set), "quota exceeded")
	})
}

func TestService_TableEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("Database not configured", func(t *testing.T) {
		svc := NewService(nil, "", zap.NewNop(), nil, testConfig)
		_, err := svc.TableEntries(ctx, "documents", "name", "content")
		assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	})

	t.Run("MySQL rows", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `documents`").WillReturnRows(
			sqlmock.NewRows([]string{"Field", "Type"}).
				AddRow("name", "varchar(255)").
				AddRow("content", "longblob"))
		sqlMock.ExpectQuery("SELECT name AS name, content AS content FROM documents ORDER BY name").WillReturnRows(
			sqlmock.NewRows([]string{"name", "content"}).
				AddRow("a.txt", []byte("alpha")))

		svc := NewService(nil, "", zap.NewNop(), db, testConfig)
		in, err := svc.TableEntries(ctx, "documents", "name", "content")
		require.NoError(t, err)

		result := svc.Generate(ctx, in)
		assert.Equal(t, []fingerprint.Record{{Name: "a.txt", Digest: fingerprint.Hash([]byte("alpha"))}}, result.Fingerprints)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Unknown column", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `documents`").WillReturnRows(
			sqlmock.NewRows([]string{"Field", "Type"}).AddRow("name", "varchar(255)"))

		svc := NewService(nil, "", zap.NewNop(), db, testConfig)
		_, err := svc.TableEntries(ctx, "documents", "name", "content")
		assert.ErrorIs(t, err, database.ErrMissingColumn)
	})
}

func TestConfig(t *testing.T) {
	cfg := Config{BaselinePrefix: "baselines/", BaselineCacheTTLSeconds: 60, MaxUploadMB: 2}

	assert.Equal(t, "baselines/release.csv", cfg.BaselineKey("release"))
	assert.Equal(t, "baselines/release.csv", cfg.BaselineKey("release.csv"))
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, int64(0), Config{}.MaxUploadBytes())
	assert.Equal(t, "1m0s", cfg.BaselineCacheTTL().String())
	assert.Zero(t, Config{}.BaselineCacheTTL())
}
