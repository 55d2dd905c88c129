package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"catalog-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the folders the bucket must hold: one source folder per
// catalog under sourcePrefix, plus the archive prefix when archiving is on.
func RequiredFolders(sourcePrefix, archivePrefix string, catalogs []string) []string {
	var folders []string
	for _, c := range catalogs {
		folders = append(folders, strings.TrimSuffix(sourcePrefix+c, "/"))
	}
	if archivePrefix != "" {
		folders = append(folders, strings.TrimSuffix(archivePrefix, "/"))
	}
	return folders
}

// CheckStructure returns the folders with no object below them.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:  folder + "/",
			MaxKeys: 1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			found = obj.Err == nil
			break
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

// FixStructure creates an empty folder marker for every missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	if client == nil {
		return fmt.Errorf("storage is not configured")
	}
	for _, folder := range missing {
		marker := strings.TrimSuffix(folder, "/") + "/"
		if _, err := client.PutObject(ctx, bucket, marker, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
