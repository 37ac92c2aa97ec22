// Package fetch downloads C sources from remote repositories into a
// project's source tree.
//
// A dependency is installed by unpacking a repository tarball (the
// default branch, or a requested ref) and keeping only the .c and .h
// files, placed under src/<repo>/ so the build discovers them like any
// other sources.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kilnbuild/kiln/pkg/builder"
)

// Source identifies a repository on one of the supported hosts.
type Source struct {
	Host  string
	Owner string
	Repo  string
}

// ParseSource resolves a repository argument. Plain owner/repo defaults
// to github.com; a three-part form names the host explicitly.
func ParseSource(s string) (Source, error) {
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 2:
		parts = append([]string{"github.com"}, parts...)
	case 3:
	default:
		return Source{}, fmt.Errorf("`%s` is not a valid repository (expected owner/repo or host/owner/repo)", s)
	}

	src := Source{Host: parts[0], Owner: parts[1], Repo: parts[2]}
	if src.Owner == "" || src.Repo == "" {
		return Source{}, fmt.Errorf("`%s` is not a valid repository (expected owner/repo or host/owner/repo)", s)
	}
	switch src.Host {
	case "github.com", "gitlab.com", "bitbucket.org":
	default:
		return Source{}, fmt.Errorf("`%s` is not a supported host (supported: github.com, gitlab.com, bitbucket.org)", src.Host)
	}
	return src, nil
}

func (s Source) String() string {
	return s.Host + "/" + s.Owner + "/" + s.Repo
}

// tarball returns the archive endpoint serving ref, or the default
// branch when ref is empty.
func (s Source) tarball(ref string) string {
	switch s.Host {
	case "gitlab.com":
		url := fmt.Sprintf("https://gitlab.com/api/v4/projects/%s%%2F%s/repository/archive.tar.gz", s.Owner, s.Repo)
		if ref != "" {
			url += "?sha=" + ref
		}
		return url
	case "bitbucket.org":
		if ref == "" {
			ref = "HEAD"
		}
		return fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz", s.Owner, s.Repo, ref)
	default:
		url := fmt.Sprintf("https://api.github.com/repos/%s/%s/tarball", s.Owner, s.Repo)
		if ref != "" {
			url += "/" + ref
		}
		return url
	}
}

// Client installs remote sources into a project.
type Client struct {
	// Dir is the project root. Empty means the current directory.
	Dir string
	// HTTP is used for downloads. Nil means a client with a 60s timeout.
	HTTP *http.Client
	// URL overrides the per-host archive endpoints. Tests point it at a
	// local server.
	URL func(src Source, ref string) string
	// Log receives progress detail.
	Log *logrus.Logger
}

// Install downloads the repository tarball at ref (default branch when
// empty), unpacks its C sources and headers into the project's source
// tree and records the dependency in the lockfile.
func (c *Client) Install(ctx context.Context, src Source, ref string) (Dep, error) {
	url := c.url(src, ref)
	c.log().Debugf("downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Dep{}, err
	}
	resp, err := c.http().Do(req)
	if err != nil {
		return Dep{}, fmt.Errorf("download %s: %w", src, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Dep{}, fmt.Errorf("repository %s does not exist", src)
	case resp.StatusCode != http.StatusOK:
		return Dep{}, fmt.Errorf("download %s: unexpected status %s", src, resp.Status)
	}

	files, err := c.unpack(resp.Body, src.Repo)
	if err != nil {
		return Dep{}, err
	}
	if files == 0 {
		return Dep{}, fmt.Errorf("repository %s contains no C sources", src)
	}

	dep := Dep{Source: src.String(), Ref: ref, Files: files, InstalledAt: time.Now().UTC()}
	if err := appendLock(c.dir(), dep); err != nil {
		return Dep{}, err
	}
	return dep, nil
}

// unpack extracts .c and .h files into src/<repo>/, preserving the
// archive's layout below its single root directory. Everything else in
// the archive is skipped.
func (c *Client) unpack(r io.Reader, repo string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("read archive: %w", err)
	}
	defer gz.Close()

	dest := filepath.Join(c.dir(), builder.SourceDir, repo)
	count := 0

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := path.Clean(hdr.Name)
		if !strings.HasSuffix(name, ".c") && !strings.HasSuffix(name, ".h") {
			continue
		}

		// Hosts wrap the tree in a "<repo>-<sha>/" root; drop it.
		rel := name
		if i := strings.IndexByte(name, '/'); i >= 0 {
			rel = name[i+1:]
		}
		if rel == "" || rel == "." || strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return count, fmt.Errorf("failed to create directory: %w", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return count, fmt.Errorf("read %s from archive: %w", rel, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return count, fmt.Errorf("failed to create %s: %w", target, err)
		}
		count++
	}
	return count, nil
}

func (c *Client) dir() string {
	if c.Dir == "" {
		return "."
	}
	return c.Dir
}

func (c *Client) http() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: 60 * time.Second}
	}
	return c.HTTP
}

func (c *Client) url(s Source, ref string) string {
	if c.URL != nil {
		return c.URL(s, ref)
	}
	return s.tarball(ref)
}

func (c *Client) log() *logrus.Logger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
