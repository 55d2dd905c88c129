package catalog

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"catalog-manager/core/storage"

	"github.com/docker/go-units"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxArchiveSize bounds a downloaded archive.
const maxArchiveSize = 2 << 30

var zipMagic = []byte("PK\x03\x04")

// Downloader fetches DAT archives over HTTP into the DAT directory.
type Downloader struct {
	http   *http.Client
	logger *zap.Logger
}

// NewDownloader creates a downloader over client.
func NewDownloader(client *http.Client, logger *zap.Logger) *Downloader {
	return &Downloader{http: client, logger: logger}
}

// Download fetches rawURL and unpacks it under destDir/<catalog>, replacing what the
// previous download left there. Plain DAT documents are stored as they are. It returns
// the written files.
func (d *Downloader) Download(ctx context.Context, rawURL, destDir string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse download url: %w", err)
	}
	catalog := CatalogFromPath(u.Path)
	if catalog == "" {
		return nil, fmt.Errorf("%s does not name a known catalog", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("download %s: archive larger than %s", rawURL, units.HumanSize(maxArchiveSize))
	}
	d.logger.Info("Downloaded catalog archive",
		zap.String("url", rawURL),
		zap.String("catalog", catalog),
		zap.String("size", units.HumanSize(float64(len(data)))),
	)

	target := filepath.Join(destDir, catalogDir(catalog))
	if err := os.RemoveAll(target); err != nil {
		return nil, fmt.Errorf("clear %s: %w", target, err)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, err
	}

	name := fileNameFromResponse(resp, u)
	return WriteArchive(data, name, target)
}

// catalogDir is the directory a catalog's documents live in.
func catalogDir(catalog string) string {
	return strings.ToLower(catalog)
}

func fileNameFromResponse(resp *http.Response, u *url.URL) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if idx := strings.Index(cd, "filename="); idx >= 0 {
			name := strings.Trim(cd[idx+len("filename="):], `"; `)
			if name != "" {
				return filepath.Base(name)
			}
		}
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = "catalog"
	}
	return name
}

// WriteArchive stores data under dir: zip archives are extracted, anything else is
// written as name. It returns the written files.
func WriteArchive(data []byte, name, dir string) ([]string, error) {
	if !bytes.HasPrefix(data, zipMagic) {
		dest := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, err
		}
		return []string{dest}, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("open archive %s: %w", name, err)
	}

	var written []string
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		dest, err := safeJoin(dir, zf.Name)
		if err != nil {
			return written, err
		}
		if err := extractFile(zf, dest); err != nil {
			return written, err
		}
		written = append(written, dest)
	}
	return written, nil
}

// safeJoin joins an archive entry name to dir, refusing entries that escape it.
func safeJoin(dir, name string) (string, error) {
	dest := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return dest, nil
}

func extractFile(zf *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", zf.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, io.LimitReader(rc, maxArchiveSize)); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", zf.Name, err)
	}
	return out.Close()
}

// BucketSource reads DAT documents and archives from object storage and archives
// downloads back to it.
type BucketSource struct {
	client  storage.Client
	bucket  string
	prefix  string
	archive string
	keep    time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewBucketSource creates a bucket source.
func NewBucketSource(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *BucketSource {
	return &BucketSource{
		client:  client,
		bucket:  bucket,
		prefix:  cfg.StoragePrefix,
		archive: cfg.ArchivePrefix,
		keep:    time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch downloads every object under the source prefix into destDir, keeping the key
// layout below the prefix. Zip objects are extracted in place. It returns the written
// files.
func (b *BucketSource) Fetch(ctx context.Context, destDir string) ([]string, error) {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", b.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", b.bucket)
	}

	var written []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: b.prefix, Recursive: true}) {
		if obj.Err != nil {
			return written, fmt.Errorf("list %s/%s: %w", b.bucket, b.prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		files, err := b.fetchObject(ctx, obj, destDir)
		if err != nil {
			b.logger.Error("Failed to fetch catalog object", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		written = append(written, files...)
	}
	return written, nil
}

func (b *BucketSource) fetchObject(ctx context.Context, obj minio.ObjectInfo, destDir string) ([]string, error) {
	rel := strings.TrimPrefix(obj.Key, b.prefix)
	dest, err := safeJoin(destDir, rel)
	if err != nil {
		return nil, err
	}

	rc, err := b.client.GetObject(ctx, b.bucket, obj.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxArchiveSize))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}
	b.logger.Debug("Fetched catalog object", zap.String("key", obj.Key), zap.String("size", units.HumanSize(float64(len(data)))))
	return WriteArchive(data, filepath.Base(dest), filepath.Dir(dest))
}

// Archive copies a downloaded file to <archive prefix><catalog>/<date>/<name>.
func (b *BucketSource) Archive(ctx context.Context, catalog, path string) (string, error) {
	if b.archive == "" {
		return "", nil
	}
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return "", fmt.Errorf("check bucket %s: %w", b.bucket, err)
	}
	if !exists {
		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("create bucket %s: %w", b.bucket, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	key := b.archive + catalogDir(catalog) + "/" + b.now().UTC().Format("2006-01-02") + "/" + filepath.Base(path)
	_, err = b.client.PutObject(ctx, b.bucket, key, f, info.Size(), minio.PutObjectOptions{ContentType: "application/xml"})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return key, nil
}

// Prune removes archived objects last modified before the retention window and
// returns how many were removed.
func (b *BucketSource) Prune(ctx context.Context) (int, error) {
	if b.archive == "" || b.keep <= 0 {
		return 0, nil
	}
	cutoff := b.now().Add(-b.keep)

	var stale []minio.ObjectInfo
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: b.archive, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("list %s/%s: %w", b.bucket, b.archive, obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, obj)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	removed := len(stale)
	var errs []error
	for rerr := range b.client.RemoveObjects(ctx, b.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		removed--
		errs = append(errs, fmt.Errorf("remove %s: %w", rerr.ObjectName, rerr.Err))
	}
	return removed, errors.Join(errs...)
}
