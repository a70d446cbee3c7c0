// Package backup aggregates sealed folders into a portable bundle.
//
// A bundle carries ciphertext only. It never holds a folder secret or any
// decrypted content, so it can be stored anywhere; restoring a folder from
// it still requires the secret kept by the user.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Version is written into every bundle. Readers accept this or any later
// version, since later versions only add fields.
const Version = 1

// Bundle kinds recorded in Metadata.Kind.
const (
	KindSingle  = "single"
	KindArchive = "archive"
)

// Bundle is the export document.
type Bundle struct {
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	OwnerID   string         `json:"ownerId"`
	Folders   []BundleFolder `json:"folders"`
	Metadata  Metadata       `json:"metadata"`
}

// BundleFolder is one sealed folder inside a bundle.
type BundleFolder struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Ciphertext []byte    `json:"ciphertext"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Metadata struct {
	Count int    `json:"count"`
	Kind  string `json:"kind"`
}

// Build copies the ciphertext of every sealed folder into a new bundle.
// Folders that were never sealed have nothing to back up and are left out.
func Build(folders []models.Folder, ownerID string, now time.Time) *Bundle {
	b := &Bundle{
		Version:   Version,
		CreatedAt: now.UTC().Truncate(time.Second),
		OwnerID:   ownerID,
		Folders:   make([]BundleFolder, 0, len(folders)),
	}
	for i := range folders {
		f := &folders[i]
		if !f.Sealed() {
			continue
		}
		b.Folders = append(b.Folders, BundleFolder{
			ID:         f.ID,
			Name:       f.Name,
			Ciphertext: bytes.Clone(f.Ciphertext),
			CreatedAt:  f.CreatedAt.UTC(),
		})
	}
	b.Metadata.Count = len(b.Folders)
	return b
}

// RenderSingleFile returns the bundle as one indented JSON document.
func RenderSingleFile(b *Bundle) ([]byte, error) {
	return render(b, KindSingle)
}

func render(b *Bundle, kind string) ([]byte, error) {
	out := *b
	out.Metadata = Metadata{Count: len(b.Folders), Kind: kind}
	if out.Folders == nil {
		out.Folders = []BundleFolder{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	return append(data, '\n'), nil
}

// Parse reads a bundle document produced by RenderSingleFile or found inside
// an archive. Unknown fields are ignored.
func Parse(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedBundle, err)
	}
	if b.Version < 1 {
		return nil, fmt.Errorf("%w: missing version", common.ErrMalformedBundle)
	}
	if b.Metadata.Count != len(b.Folders) {
		return nil, fmt.Errorf("%w: metadata count %d, %d folders", common.ErrMalformedBundle, b.Metadata.Count, len(b.Folders))
	}
	for i, f := range b.Folders {
		if f.ID == "" || len(f.Ciphertext) == 0 {
			return nil, fmt.Errorf("%w: folder #%d has no id or ciphertext", common.ErrMalformedBundle, i+1)
		}
	}
	if b.Folders == nil {
		b.Folders = []BundleFolder{}
	}
	return &b, nil
}

// FileName returns the suggested artifact name for a bundle of kind created at now.
func FileName(kind string, now time.Time) string {
	ext := ".json"
	if kind == KindArchive {
		ext = ".tar.gz"
	}
	return "gophvault-backup-" + now.UTC().Format("2006-01-02") + ext
}
