package builder

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"zombiezen.com/go/nix/nar"
	"zombiezen.com/go/nix/nixbase32"
)

// TreeDigest hashes the NAR serialization of the named subdirectories of
// root. NAR ignores timestamps and ownership, so two builds with the same
// content produce the same digest. Missing subdirectories are skipped.
func TreeDigest(root string, subdirs ...string) (string, error) {
	h := sha256.New()
	nw := nar.NewWriter(h)

	if err := nw.WriteHeader(&nar.Header{Mode: fs.ModeDir | 0o755}); err != nil {
		return "", err
	}

	names := append([]string(nil), subdirs...)
	sort.Strings(names)

	for _, name := range names {
		dir := filepath.Join(root, name)
		if _, err := os.Lstat(dir); os.IsNotExist(err) {
			continue
		}
		if err := writeNARTree(nw, dir, name); err != nil {
			return "", err
		}
	}

	if err := nw.Close(); err != nil {
		return "", err
	}

	return "sha256:" + nixbase32.EncodeToString(h.Sum(nil)), nil
}

func writeNARTree(nw *nar.Writer, dir, prefix string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = path.Join(prefix, filepath.ToSlash(rel))
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := os.Readlink(p)
			if err != nil {
				return err
			}
			return nw.WriteHeader(&nar.Header{Path: name, Mode: fs.ModeSymlink, LinkTarget: target})
		case info.IsDir():
			return nw.WriteHeader(&nar.Header{Path: name, Mode: fs.ModeDir | 0o755})
		default:
			hdr := &nar.Header{Path: name, Mode: info.Mode().Perm(), Size: info.Size()}
			if err := nw.WriteHeader(hdr); err != nil {
				return err
			}
			f, err := os.Open(p)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := io.Copy(nw, f); err != nil {
				return fmt.Errorf("hashing %s: %w", p, err)
			}
			return nil
		}
	})
}
