package catalog

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalog-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteArchive(zipOf(t, map[string]string{
		"Sony - PlayStation (2024).dat": "<datafile/>",
		"sub/Sega - Saturn (2024).dat":  "<datafile/>",
	}), "daily.zip", dir)
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.FileExists(t, filepath.Join(dir, "sub", "Sega - Saturn (2024).dat"))

	written, err = WriteArchive([]byte("<datafile/>"), "plain.dat", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "plain.dat")}, written)
}

func TestWriteArchiveRefusesEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteArchive(zipOf(t, map[string]string{"../evil.dat": "x"}), "evil.zip", dir)
	assert.ErrorContains(t, err, "escapes")
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "evil.dat"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloader(t *testing.T) {
	archive := zipOf(t, map[string]string{"Sony - PlayStation (2024).dat": "<datafile/>"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/redump/daily" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="redump-daily.zip"`)
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	stale := writeFile(t, filepath.Join(dir, "redump", "old.dat"), "<datafile/>")

	d := NewDownloader(srv.Client(), zap.NewNop())
	files, err := d.Download(context.Background(), srv.URL+"/redump/daily", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "redump", "Sony - PlayStation (2024).dat")}, files)
	assert.NoFileExists(t, stale)

	_, err = d.Download(context.Background(), srv.URL+"/misc/daily", dir)
	assert.ErrorContains(t, err, "known catalog")

	_, err = d.Download(context.Background(), srv.URL+"/tosec/missing", dir)
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestBucketSourceFetch(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalogs").Return(true, nil)

	objects := make(chan minio.ObjectInfo, 3)
	objects <- minio.ObjectInfo{Key: "dats/no-intro/"}
	objects <- minio.ObjectInfo{Key: "dats/no-intro/gb.dat"}
	objects <- minio.ObjectInfo{Key: "dats/redump/daily.zip"}
	close(objects)
	client.On("ListObjects", mock.Anything, "catalogs", mock.Anything).Return((<-chan minio.ObjectInfo)(objects))

	client.On("GetObject", mock.Anything, "catalogs", "dats/no-intro/gb.dat", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("<datafile/>"))), nil)
	client.On("GetObject", mock.Anything, "catalogs", "dats/redump/daily.zip", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(zipOf(t, map[string]string{"psx.dat": "<datafile/>"}))), nil)

	src := NewBucketSource(client, "catalogs", Config{StoragePrefix: "dats/"}, zap.NewNop())
	dir := t.TempDir()
	files, err := src.Fetch(context.Background(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "no-intro", "gb.dat"),
		filepath.Join(dir, "redump", "psx.dat"),
	}, files)
	client.AssertExpectations(t)
}

func TestBucketSourceFetchSkipsFailingObjects(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalogs").Return(true, nil)
	objects := make(chan minio.ObjectInfo, 1)
	objects <- minio.ObjectInfo{Key: "dats/no-intro/gb.dat"}
	close(objects)
	client.On("ListObjects", mock.Anything, "catalogs", mock.Anything).Return((<-chan minio.ObjectInfo)(objects))
	client.On("GetObject", mock.Anything, "catalogs", "dats/no-intro/gb.dat", mock.Anything).
		Return(nil, errors.New("connection reset"))

	src := NewBucketSource(client, "catalogs", Config{StoragePrefix: "dats/"}, zap.NewNop())
	files, err := src.Fetch(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBucketSourceArchive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalogs").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "catalogs", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "catalogs", "archive/redump/2024-03-01/psx.dat", mock.Anything, int64(11), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	src := NewBucketSource(client, "catalogs", Config{ArchivePrefix: "archive/"}, zap.NewNop())
	src.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	path := writeFile(t, filepath.Join(t.TempDir(), "psx.dat"), "<datafile/>")
	key, err := src.Archive(context.Background(), "Redump", path)
	require.NoError(t, err)
	assert.Equal(t, "archive/redump/2024-03-01/psx.dat", key)
	client.AssertExpectations(t)
}

func TestBucketSourcePrune(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	listed := make(chan minio.ObjectInfo, 3)
	listed <- minio.ObjectInfo{Key: "archive/redump/2024-01-01/psx.dat", LastModified: now.AddDate(0, 0, -150)}
	listed <- minio.ObjectInfo{Key: "archive/redump/2024-02-01/psx.dat", LastModified: now.AddDate(0, 0, -120)}
	listed <- minio.ObjectInfo{Key: "archive/redump/2024-05-30/psx.dat", LastModified: now.AddDate(0, 0, -2)}
	close(listed)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "catalogs", minio.ListObjectsOptions{Prefix: "archive/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(listed))
	var removed []string
	client.On("RemoveObjects", mock.Anything, "catalogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	src := NewBucketSource(client, "catalogs", Config{ArchivePrefix: "archive/", ArchiveRetentionDays: 90}, zap.NewNop())
	src.now = func() time.Time { return now }

	n, err := src.Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"archive/redump/2024-01-01/psx.dat", "archive/redump/2024-02-01/psx.dat"}, removed)

	disabled := NewBucketSource(client, "catalogs", Config{ArchivePrefix: "archive/"}, zap.NewNop())
	n, err = disabled.Prune(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
