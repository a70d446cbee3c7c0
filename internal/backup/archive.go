package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Entry names inside an archive.
const (
	ArchiveDocument = "backup.json"
	ArchiveNotice   = "KEYS_NOT_INCLUDED.txt"
	archiveFolders  = "folders/"
)

const maxArchiveEntry = 1 << 30

const noticeText = `GophVault backup

This archive contains encrypted folder data only.
Encryption keys are NOT included.

Each folder can only be decrypted with the 64-character key that was shown
when the folder was created. Store those keys separately from this backup.
Without them the data in this archive cannot be recovered.
`

// RenderArchive returns the bundle as a gzip-compressed tar archive holding
// the combined document, one document per folder and a notice about keys.
// All entries carry the bundle's creation time, so equal bundles render to
// equal bytes.
func RenderArchive(b *Bundle) ([]byte, error) {
	doc, err := render(b, KindArchive)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	add := func(name string, body []byte, mode int64) error {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     mode,
			Size:     int64(len(body)),
			ModTime:  b.CreatedAt,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		_, err := tw.Write(body)
		return err
	}

	if err := add(ArchiveDocument, doc, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", ArchiveDocument, err)
	}

	for i, f := range b.Folders {
		body, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
		}
		name := FolderEntryName(i, f.Name)
		if err := add(name, append(body, '\n'), 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := add(ArchiveNotice, []byte(noticeText), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", ArchiveNotice, err)
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("close gzip: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseArchive restores a bundle from the combined document inside an
// archive produced by RenderArchive.
func ParseArchive(data []byte) (*Bundle, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedBundle, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s not found in archive", common.ErrMalformedBundle, ArchiveDocument)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedBundle, err)
		}
		if hdr.Name != ArchiveDocument {
			continue
		}

		doc, err := io.ReadAll(io.LimitReader(tr, maxArchiveEntry))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedBundle, err)
		}
		return Parse(doc)
	}
}

// FolderEntryName returns the archive entry name for the i-th folder.
func FolderEntryName(i int, name string) string {
	return fmt.Sprintf("%s%03d_%s.json", archiveFolders, i+1, SafeName(name))
}

// SafeName strips characters that are unsafe in file names. Spaces become
// underscores; an empty result falls back to "folder".
func SafeName(name string) string {
	return SafeNameOr(name, "folder")
}

// SafeNameOr is SafeName with a caller-chosen fallback for names that have
// nothing safe left.
func SafeNameOr(name, fallback string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == '.':
			if sb.Len() > 0 {
				sb.WriteRune(r)
			}
		case r == ' ':
			sb.WriteRune('_')
		}
		if sb.Len() >= 64 {
			break
		}
	}
	out := strings.Trim(sb.String(), "._")
	if out == "" {
		return fallback
	}
	return out
}
