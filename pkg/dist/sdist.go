package dist

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/layout"
)

// Source archive formats
const (
	FormatXZ   = "xztar"
	FormatZstd = "zsttar"
	FormatGzip = "gztar"
	FormatTar  = "tar"
)

var formatSuffix = map[string]string{
	FormatXZ:   ".tar.xz",
	FormatZstd: ".tar.zst",
	FormatGzip: ".tar.gz",
	FormatTar:  ".tar",
}

// SourceArchiveName returns the file name of the source distribution
func SourceArchiveName(desc *core.Descriptor, format string) (string, error) {
	suffix, ok := formatSuffix[format]
	if !ok {
		return "", fmt.Errorf("unsupported source archive format %q", format)
	}
	return desc.DistName() + suffix, nil
}

// WriteSourceArchive archives the package root (staged sources included)
// under a "<name>-<version>/" prefix and returns the archive path. Output
// directories and hidden files are left out.
func WriteSourceArchive(l *layout.Layout, desc *core.Descriptor, distDir, buildDir, format string) (_ string, err error) {
	name, err := SourceArchiveName(desc, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(distDir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", distDir, err)
	}

	archivePath := filepath.Join(distDir, name)
	f, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(archivePath)
		}
	}()

	w, err := compressor(f, format)
	if err != nil {
		return "", err
	}

	tw := tar.NewWriter(w)
	prefix := desc.DistName()

	if err := writeTarFile(tw, joinSlash(prefix, "PKG-INFO"), []byte(pkgInfo(desc))); err != nil {
		return "", err
	}

	skip := skipBuildOutput(excludedRel(l.PackageRoot, distDir, buildDir)...)
	err = filepath.WalkDir(l.PackageRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(l.PackageRoot, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if skip(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == "PKG-INFO" {
			return nil
		}
		return addTarEntry(tw, p, joinSlash(prefix, rel), d)
	})
	if err != nil {
		return "", fmt.Errorf("archiving %s: %w", l.PackageRoot, err)
	}

	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return archivePath, nil
}

func compressor(w io.Writer, format string) (io.WriteCloser, error) {
	switch format {
	case FormatXZ:
		return xz.NewWriter(w)
	case FormatZstd:
		return zstd.NewWriter(w)
	case FormatGzip:
		return gzip.NewWriter(w), nil
	case FormatTar:
		return nopCloser{w}, nil
	default:
		return nil, fmt.Errorf("unsupported source archive format %q", format)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// excludedRel returns the output directories that live inside root, relative
// to it.
func excludedRel(root string, dirs ...string) []string {
	var rels []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func addTarEntry(tw *tar.Writer, p, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(p); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	hdr.Uid, hdr.Gid = 0, 0
	hdr.Uname, hdr.Gname = "", ""

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}

func writeTarFile(tw *tar.Writer, name string, data []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0644,
		Size:     int64(len(data)),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}
