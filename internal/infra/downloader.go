package infra

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

const downloadTimeout = 5 * time.Minute

// HTTPBundleDownloader implements domain.BundleDownloader. It downloads a
// tar.gz utility bundle and unpacks its files into a local tools directory.
type HTTPBundleDownloader struct {
	client *http.Client
}

// NewBundleDownloader creates a new bundle downloader.
func NewBundleDownloader() *HTTPBundleDownloader {
	return &HTTPBundleDownloader{
		client: &http.Client{Timeout: downloadTimeout},
	}
}

// NewBundleDownloaderWithClient creates a downloader with a custom HTTP
// client (for testing).
func NewBundleDownloaderWithClient(client *http.Client) *HTTPBundleDownloader {
	return &HTTPBundleDownloader{client: client}
}

// Fetch downloads the archive at url and extracts its regular files into
// destDir. Returns the extracted file paths.
func (d *HTTPBundleDownloader) Fetch(ctx context.Context, url, destDir string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "hostmaint")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download bundle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle download returned status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "hostmaint-bundle-*.tar.gz")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write download: %w", err)
	}
	tmpFile.Close()

	return d.extract(tmpPath, destDir)
}

// extract unpacks regular files from the archive into destDir, flattening
// directory structure and marking every file executable. Member names that
// escape destDir are rejected.
func (d *HTTPBundleDownloader) extract(archivePath, destDir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	defer gzr.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	tr := tar.NewReader(gzr)
	var extracted []string

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		base := filepath.Base(header.Name)
		if base == "." || base == ".." || strings.Contains(base, "..") {
			return nil, fmt.Errorf("unsafe archive member name: %s", header.Name)
		}
		destPath := filepath.Join(destDir, base)

		outFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(outFile, tr); err != nil {
			outFile.Close()
			return nil, err
		}
		outFile.Close()

		extracted = append(extracted, destPath)
	}

	if len(extracted) == 0 {
		return nil, fmt.Errorf("no files found in bundle archive")
	}
	return extracted, nil
}

// Ensure HTTPBundleDownloader implements domain.BundleDownloader.
var _ domain.BundleDownloader = (*HTTPBundleDownloader)(nil)
