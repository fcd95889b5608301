// Package filestorage saves uploaded files to the local filesystem and
// returns stable URLs. The rest of the application only ever stores the
// returned URL string.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/deniz/teamup/internal/pkg/logger"
	"github.com/google/uuid"
)

// Subdirectories used by the application
const (
	ProfilePhotoDir = "profile"
	PostImageDir    = "posts"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // optional base URL prepended to returned paths
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile saves an uploaded file under the given subdirectory and returns
// the accessible path or URL. Filenames are replaced with UUIDs to prevent
// collisions.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := ls.accessiblePath(subPath, uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("accessible_path", accessiblePath).Msg("File saved")
	return accessiblePath, nil
}

func (ls *LocalStorage) accessiblePath(subPath, filename string) string {
	if ls.baseURL != "" {
		base := strings.TrimRight(ls.baseURL, "/")
		if subPath != "" {
			return base + "/" + subPath + "/" + filename
		}
		return base + "/" + filename
	}

	if subPath != "" {
		return filepath.ToSlash(filepath.Join("uploads", subPath, filename))
	}
	return filepath.ToSlash(filepath.Join("uploads", filename))
}
