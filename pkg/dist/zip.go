package dist

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// recordEntry is one line of a wheel RECORD file
type recordEntry struct {
	Name string
	Hash string
	Size int64
}

func (r recordEntry) String() string {
	if r.Hash == "" {
		return r.Name + ",,"
	}
	return fmt.Sprintf("%s,%s,%d", r.Name, r.Hash, r.Size)
}

// fileHash returns the "sha256=<urlsafe base64>" digest used in RECORD
func fileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256=" + base64.RawURLEncoding.EncodeToString(sum[:])
}

// zipArchive writes members in insertion order and remembers their hashes
type zipArchive struct {
	zw      *zip.Writer
	records []recordEntry
}

func newZipArchive(w io.Writer) *zipArchive {
	return &zipArchive{zw: zip.NewWriter(w)}
}

func (a *zipArchive) addBytes(name string, data []byte, mode fs.FileMode) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
	hdr.SetMode(mode)

	w, err := a.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	a.records = append(a.records, recordEntry{Name: name, Hash: fileHash(data), Size: int64(len(data))})
	return nil
}

// addTree adds every regular file below dir under prefix
func (a *zipArchive) addTree(dir, prefix string) error {
	skip := skipBuildOutput()
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, p)
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
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return a.addBytes(joinSlash(prefix, rel), data, info.Mode().Perm())
	})
}

func (a *zipArchive) Close() error {
	return a.zw.Close()
}

// writeZip creates path and fills it through fill. A failed write leaves no
// file behind.
func writeZip(path string, fill func(a *zipArchive) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(path)
		}
	}()

	a := newZipArchive(f)
	if err := fill(a); err != nil {
		return err
	}
	if err := a.Close(); err != nil {
		return err
	}
	return f.Close()
}
