// Package codec turns folder content into a sealed blob and back.
//
// Failures while opening are never distinguished: a wrong key, a tampered
// byte, a truncated blob and undecodable plaintext all surface as
// common.ErrInvalidKey.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Codec is stateless and safe for concurrent use.
type Codec struct {
	// MaxSealedSize bounds the serialized content. Zero means common.MaxSealedSize.
	MaxSealedSize int

	// Now is used to refresh UpdatedAt on Seal. Nil means time.Now.
	Now func() time.Time
}

// New returns a codec with default limits.
func New() Codec {
	return Codec{}
}

func (c Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Codec) limit() int {
	if c.MaxSealedSize > 0 {
		return c.MaxSealedSize
	}
	return common.MaxSealedSize
}

// Seal refreshes content.UpdatedAt, serializes it and encrypts it under key.
// content is normalized in place the way Unseal returns it: timestamps in
// UTC, empty rather than nil slices.
func (c Codec) Seal(content *models.Content, key cryptox.Secret) ([]byte, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: nil content", common.ErrEncoding)
	}
	content.Touch(c.now())
	normalize(content)

	plain, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	defer common.WipeByteArray(plain)

	if len(plain) > c.limit() {
		return nil, fmt.Errorf("%w: content is %d bytes, limit %d", common.ErrEncoding, len(plain), c.limit())
	}

	blob, err := cryptox.SealBlob(plain, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	return blob, nil
}

// Unseal decrypts and decodes blob.
func (c Codec) Unseal(blob []byte, key cryptox.Secret) (*models.Content, error) {
	plain, err := cryptox.OpenBlob(blob, key)
	if err != nil {
		return nil, common.ErrInvalidKey
	}
	defer common.WipeByteArray(plain)

	var content models.Content
	if err := json.Unmarshal(plain, &content); err != nil {
		return nil, common.ErrInvalidKey
	}
	normalize(&content)

	return &content, nil
}

// UnsealString parses a user-typed key and unseals blob with it. A key that
// is not 64 hex characters counts as a wrong key.
func (c Codec) UnsealString(blob []byte, keyText string) (*models.Content, error) {
	key, err := cryptox.ParseSecret(keyText)
	if err != nil {
		return nil, common.ErrInvalidKey
	}
	defer key.Wipe()

	return c.Unseal(blob, key)
}

func normalize(c *models.Content) {
	if c.Files == nil {
		c.Files = []models.Attachment{}
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	for i := range c.Files {
		f := &c.Files[i]
		f.CreatedAt = f.CreatedAt.UTC()
		f.UpdatedAt = f.UpdatedAt.UTC()
		if f.Payload == nil {
			f.Payload = []byte{}
		}
	}
}
