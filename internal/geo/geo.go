// Package geo imports the area/community geography reference dataset. The
// dataset is a zip of JSON files published by the national office; it is
// large, so the downloader caches the archive and the extracted tree and
// both steps can be skipped on re-runs.
package geo

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const downloadTimeout = 5 * time.Minute

// Options controls the geography import run.
type Options struct {
	// SkipDownload reuses an already-downloaded archive.
	SkipDownload bool
	// SkipExtract reuses an already-extracted tree.
	SkipExtract bool
	// Force re-downloads the archive even when a cached copy exists.
	Force bool
}

// Fetch downloads the reference archive and extracts it under destDir.
// A cached archive is reused unless Force is set; the skip flags bypass
// either step entirely. Returns the directory holding the extracted
// JSON files.
func Fetch(ctx context.Context, datasetURL, destDir string, opts Options, logger *slog.Logger) (string, error) {
	archivePath := filepath.Join(destDir, "geography.zip")
	extractDir := filepath.Join(destDir, "geography")

	if opts.SkipDownload {
		logger.Info("skipping download, using cached archive", "path", archivePath)
	} else if !opts.Force && archiveExists(archivePath) {
		logger.Info("archive already present, skipping download", "path", archivePath)
	} else {
		if datasetURL == "" {
			return "", fmt.Errorf("GEO_DATASET_URL is required")
		}
		if err := download(ctx, datasetURL, archivePath); err != nil {
			return "", err
		}
		logger.Info("downloaded reference dataset", "path", archivePath)
	}

	if opts.SkipExtract {
		logger.Info("skipping extract, using cached tree", "path", extractDir)
	} else {
		if err := extract(archivePath, extractDir); err != nil {
			return "", err
		}
		logger.Info("extracted reference dataset", "path", extractDir)
	}

	return extractDir, nil
}

func archiveExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// extract unpacks *.json members of the archive into destDir, flattening
// the archive's internal layout. Paths escaping destDir are rejected.
func extract(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create extract dir: %w", err)
	}

	for _, member := range r.File {
		if member.FileInfo().IsDir() || !strings.HasSuffix(member.Name, ".json") {
			continue
		}
		name := filepath.Base(member.Name)
		if name == "." || name == ".." {
			continue
		}
		dest := filepath.Join(destDir, name)

		src, err := member.Open()
		if err != nil {
			return fmt.Errorf("open archive member %s: %w", member.Name, err)
		}
		out, err := os.Create(dest)
		if err != nil {
			src.Close()
			return fmt.Errorf("create %s: %w", dest, err)
		}
		_, err = io.Copy(out, src)
		src.Close()
		out.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", member.Name, err)
		}
	}
	return nil
}
