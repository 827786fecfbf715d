// Package export packages contacts as vCards inside a zip archive that is
// written incrementally to any io.Writer, typically an HTTP response.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Render returns the vCard text block for c.
func Render(c types.Contact) string {
	return "BEGIN:VCARD\r\n" +
		"VERSION:3.0\r\n" +
		"FN:" + c.Name + "\r\n" +
		"TEL:" + c.Phone + "\r\n" +
		"EMAIL:" + c.Email + "\r\n" +
		"END:VCARD\r\n"
}

// EntryName is the archive entry name for c.
func EntryName(c types.Contact) string {
	return c.ID + ".vcf"
}

// Archive is a streaming zip writer. Entries are deflated at maximum
// compression and pushed to the sink as they are added; nothing is
// buffered beyond the current entry.
type Archive struct {
	zw    *zip.Writer
	flush func() error
}

// NewArchive returns an Archive writing to w. flush, if not nil, is called
// after every entry so the bytes produced so far reach the client.
func NewArchive(w io.Writer, flush func() error) *Archive {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	return &Archive{zw: zw, flush: flush}
}

// AddEntry writes one deflated entry called name.
func (a *Archive) AddEntry(name, content string) error {
	f, err := a.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("add entry %s: %w", name, err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("add entry %s: %w", name, err)
	}
	if err := a.zw.Flush(); err != nil {
		return fmt.Errorf("add entry %s: flush: %w", name, err)
	}
	if a.flush != nil {
		if err := a.flush(); err != nil {
			return fmt.Errorf("add entry %s: flush: %w", name, err)
		}
	}
	return nil
}

// Finalize flushes pending data and writes the central directory. The
// archive cannot be used afterwards.
func (a *Archive) Finalize() error {
	if err := a.zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// Write renders every contact into a, one <id>.vcf entry each, and
// finalizes the archive. An empty slice yields a valid empty archive.
func Write(a *Archive, contacts []types.Contact) error {
	for _, c := range contacts {
		if err := a.AddEntry(EntryName(c), Render(c)); err != nil {
			return err
		}
	}
	return a.Finalize()
}

// WorkDir creates the transient working directory for one export under
// base (the OS temp dir if base is empty). The returned cleanup removes it
// and must be deferred by the caller so it runs on every exit path.
func WorkDir(base string) (string, func() error, error) {
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return "", nil, fmt.Errorf("export work dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(base, "contacts-export-*")
	if err != nil {
		return "", nil, fmt.Errorf("export work dir: %w", err)
	}
	return dir, func() error { return os.RemoveAll(dir) }, nil
}
