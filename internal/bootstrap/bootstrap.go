// Package bootstrap downloads a micromamba binary into the project
// sandbox (.pyve/bin/micromamba) when it is not installed system-wide.
package bootstrap

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pointmatic/pyve/internal/pyve"
)

// releaseURL serves the latest micromamba build per platform.
const releaseURL = "https://micro.mamba.pm/api/micromamba/%s/latest"

const downloadMaxElapsed = 2 * time.Minute

// Options control where and whether the bootstrap runs.
type Options struct {
	// Client overrides the HTTP client (tests).
	Client *http.Client

	// URL overrides the release endpoint (tests).
	URL string
}

// Needed reports whether micromamba is absent from both the project
// sandbox and PATH.
func Needed(projectDir string) bool {
	if _, err := os.Stat(filepath.Join(pyve.BinDir(projectDir), "micromamba")); err == nil {
		return false
	}
	_, err := exec.LookPath("micromamba")
	return err != nil
}

// Run downloads micromamba into .pyve/bin/micromamba, retrying
// transient network failures with exponential backoff. Returns the
// installed binary path.
func Run(ctx context.Context, projectDir string, opts Options) (string, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	url := opts.URL
	if url == "" {
		url = fmt.Sprintf(releaseURL, platformString())
	}

	binDir := pyve.BinDir(projectDir)
	if err := os.MkdirAll(binDir, 0750); err != nil {
		return "", fmt.Errorf("creating %s: %w", binDir, err)
	}

	target := filepath.Join(binDir, "micromamba")
	tmp := target + ".download"

	// BackOff implementations are stateful; always use a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = downloadMaxElapsed

	var sum string
	err := backoff.Retry(func() error {
		var err error
		sum, err = download(ctx, client, url, tmp)
		if err != nil {
			var perm *permanentError
			if errors.As(err, &perm) {
				return backoff.Permanent(perm.err)
			}
			return err
		}
		return nil
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("downloading micromamba: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("installing micromamba: %w", err)
	}
	if err := os.Chmod(target, 0750); err != nil { // #nosec G302 - executable needs exec bit
		return "", fmt.Errorf("marking micromamba executable: %w", err)
	}

	fmt.Fprintf(os.Stdout, "micromamba installed to %s (sha256 %s)\n", target, sum)
	return target, nil
}

// download fetches url to path and returns the payload's sha256.
func download(ctx context.Context, client *http.Client, url, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &permanentError{err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		// Client errors won't heal with retries.
		return "", &permanentError{fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) // #nosec G304 - path inside .pyve/bin
	if err != nil {
		return "", &permanentError{err}
	}

	hash := sha256.New()
	_, err = io.Copy(io.MultiWriter(f, hash), resp.Body)
	closeErr := f.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", closeErr
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// permanentError marks failures that backoff.Retry must not retry.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// platformString maps GOOS/GOARCH to micromamba release platform names.
func platformString() string {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "osx-arm64"
		}
		return "osx-64"
	default:
		if runtime.GOARCH == "arm64" {
			return "linux-aarch64"
		}
		return "linux-64"
	}
}
