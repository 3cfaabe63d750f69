package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blakesmith/ar"
)

var arMagic = []byte("!<arch>\n")

// ArchiveMembers lists the member names of a static library. Both the Unix
// .a and the MSVC .lib formats are ar archives.
func ArchiveMembers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(f, magic); err != nil || !bytes.Equal(magic, arMagic) {
		return nil, fmt.Errorf("%s is not an ar archive", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var members []string
	reader := ar.NewReader(f)
	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		members = append(members, hdr.Name)
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("%s has no members", path)
	}

	return members, nil
}
