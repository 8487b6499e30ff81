package integrity

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"file-integrity/core/fingerprint"
	"file-integrity/core/report"
	"file-integrity/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient
}

type upload struct {
	field, name, content string
}

func multipartRequest(t *testing.T, target string, uploads ...upload) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, u.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response, v any) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHandleGenerate(t *testing.T) {
	app, _ := setupTestApp(t)

	t.Run("JSON", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/fingerprints",
			upload{FieldFiles, "b.txt", "bravo"},
			upload{FieldFiles, "a.txt", "alpha"},
			upload{FieldFiles, "empty.txt", ""},
		)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body GenerateResult
		decode(t, resp, &body)
		assert.Equal(t, []fingerprint.Record{
			{Name: "a.txt", Digest: fingerprint.Hash([]byte("alpha"))},
			{Name: "b.txt", Digest: fingerprint.Hash([]byte("bravo"))},
			{Name: "empty.txt", Digest: fingerprint.EmptyDigest},
		}, body.Fingerprints)
		assert.Empty(t, body.Errors)
	})

	t.Run("CSV download", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/fingerprints?format=csv", upload{FieldFiles, "a.txt", "alpha"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), report.BaselineFileName)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

		set, err := report.ReadFingerprints(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, fingerprint.Set{"a.txt": fingerprint.Hash([]byte("alpha"))}, set)
	})

	t.Run("No files", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/fingerprints", upload{"other", "a.txt", "alpha"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Not multipart", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/integrity/fingerprints", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		decode(t, resp, &body)
		assert.Contains(t, body["error"], "multipart")
	})

	t.Run("Upload too large", func(t *testing.T) {
		big := strings.Repeat("x", 1024*1024+1)
		req := multipartRequest(t, "/integrity/fingerprints", upload{FieldFiles, "big.bin", big})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 413, resp.StatusCode)
	})
}

func TestHandleCompare(t *testing.T) {
	app, _ := setupTestApp(t)
	baseline := "filename,sha256\n" +
		"a.txt," + fingerprint.Hash([]byte("alpha")) + "\n" +
		"b.txt," + fingerprint.Hash([]byte("bravo")) + "\n" +
		"gone.txt," + fingerprint.EmptyDigest + "\n"

	t.Run("JSON report", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/compare",
			upload{FieldBaseline, "baseline_checksums.csv", baseline},
			upload{FieldFiles, "a.txt", "alpha"},
			upload{FieldFiles, "b.txt", "changed"},
			upload{FieldFiles, "c.txt", "charlie"},
		)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Equal(t, map[string]any{
			"total": 4.0, "unchanged": 1.0, "modified": 1.0, "new": 1.0, "missing": 1.0,
		}, body["summary"])

		results := body["results"].([]any)
		require.Len(t, results, 4)
		missing := results[3].(map[string]any)
		assert.Equal(t, "gone.txt", missing["filename"])
		assert.Equal(t, "missing", missing["status"])
		assert.Nil(t, missing["sha256_new"])
	})

	t.Run("CSV report", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/compare?format=csv",
			upload{FieldBaseline, "baseline.csv", baseline},
			upload{FieldFiles, "a.txt", "alpha"},
		)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), report.ComparisonFileName)

		records, err := report.ReadComparison(resp.Body)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("Malformed baseline", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/compare",
			upload{FieldBaseline, "baseline.csv", "name,hash\na.txt,abc\n"},
			upload{FieldFiles, "a.txt", "alpha"},
		)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		decode(t, resp, &body)
		assert.Contains(t, body["error"], "filename")
		assert.NotContains(t, body, "results")
	})

	t.Run("Missing baseline field", func(t *testing.T) {
		req := multipartRequest(t, "/integrity/compare", upload{FieldFiles, "a.txt", "alpha"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleCompareStored(t *testing.T) {
	app, mockClient := setupTestApp(t)
	baseline := "filename,sha256\na.txt," + fingerprint.Hash([]byte("alpha")) + "\n"

	mockClient.On("GetObject", mock.Anything, "test-bucket", "baselines/release.csv", minio.GetObjectOptions{}).
		Return(func(string) io.ReadCloser { return io.NopCloser(strings.NewReader(baseline)) }, nil)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "baselines/unknown.csv", minio.GetObjectOptions{}).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	mockClient.On("GetObject", mock.Anything, "test-bucket", "baselines/down.csv", minio.GetObjectOptions{}).
		Return(nil, minio.ErrorResponse{Code: "InternalError", Message: "backend down"})

	tests := []struct {
		name       string
		baseline   string
		wantStatus int
	}{
		{"Stored baseline", "release", 200},
		{"Unknown baseline", "unknown", 404},
		{"Storage failure", "down", 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, "/integrity/compare/"+tt.baseline, upload{FieldFiles, "a.txt", "alpha"})
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHandleObjects(t *testing.T) {
	app, mockClient := setupTestApp(t)

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "site/index.html"}
	ch <- minio.ObjectInfo{Key: "site/app.js"}
	close(ch)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "site/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))
	mockClient.On("GetObject", mock.Anything, "test-bucket", mock.Anything, minio.GetObjectOptions{}).
		Return(func(key string) io.ReadCloser { return io.NopCloser(strings.NewReader(key)) }, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/objects?prefix=site/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body GenerateResult
	decode(t, resp, &body)
	assert.Equal(t, []fingerprint.Record{
		{Name: "app.js", Digest: fingerprint.Hash([]byte("site/app.js"))},
		{Name: "index.html", Digest: fingerprint.Hash([]byte("site/index.html"))},
	}, body.Fingerprints)
}

func TestHandleObjects_BucketMissing(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/objects", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleTable_NoDatabase(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/tables/documents", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}
