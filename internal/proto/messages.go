package proto

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type RegisterRequest struct {
	Username string
	Salt     []byte
	Verifier []byte
}

func (m *RegisterRequest) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.Username)
	b = appendBytes(b, 2, m.Salt)
	return appendBytes(b, 3, m.Verifier), nil
}

func (m *RegisterRequest) unmarshalWire(b []byte) error {
	*m = RegisterRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Username)
		case 2:
			return consumeBytes(typ, b, &m.Salt)
		case 3:
			return consumeBytes(typ, b, &m.Verifier)
		}
		return 0
	})
}

type RegisterResponse struct {
	UserID string
}

func (m *RegisterResponse) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.UserID), nil
}

func (m *RegisterResponse) unmarshalWire(b []byte) error {
	*m = RegisterResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.UserID)
		}
		return 0
	})
}

type GetSaltRequest struct {
	Username string
}

func (m *GetSaltRequest) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.Username), nil
}

func (m *GetSaltRequest) unmarshalWire(b []byte) error {
	*m = GetSaltRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.Username)
		}
		return 0
	})
}

type GetSaltResponse struct {
	Salt []byte
}

func (m *GetSaltResponse) marshalWire(b []byte) ([]byte, error) {
	return appendBytes(b, 1, m.Salt), nil
}

func (m *GetSaltResponse) unmarshalWire(b []byte) error {
	*m = GetSaltResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeBytes(typ, b, &m.Salt)
		}
		return 0
	})
}

type LoginRequest struct {
	Username          string
	VerifierCandidate []byte
}

func (m *LoginRequest) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.Username)
	return appendBytes(b, 2, m.VerifierCandidate), nil
}

func (m *LoginRequest) unmarshalWire(b []byte) error {
	*m = LoginRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Username)
		case 2:
			return consumeBytes(typ, b, &m.VerifierCandidate)
		}
		return 0
	})
}

// tokenPair is the shared body of LoginResponse and RefreshTokenResponse.
type tokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (m *tokenPair) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.AccessToken)
	return appendString(b, 2, m.RefreshToken), nil
}

func (m *tokenPair) unmarshalWire(b []byte) error {
	*m = tokenPair{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.AccessToken)
		case 2:
			return consumeString(typ, b, &m.RefreshToken)
		}
		return 0
	})
}

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *LoginResponse) marshalWire(b []byte) ([]byte, error) {
	return (*tokenPair)(m).marshalWire(b)
}

func (m *LoginResponse) unmarshalWire(b []byte) error {
	return (*tokenPair)(m).unmarshalWire(b)
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (m *RefreshTokenRequest) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.RefreshToken), nil
}

func (m *RefreshTokenRequest) unmarshalWire(b []byte) error {
	*m = RefreshTokenRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.RefreshToken)
		}
		return 0
	})
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *RefreshTokenResponse) marshalWire(b []byte) ([]byte, error) {
	return (*tokenPair)(m).marshalWire(b)
}

func (m *RefreshTokenResponse) unmarshalWire(b []byte) error {
	return (*tokenPair)(m).unmarshalWire(b)
}

// empty is the body of every message without fields.
type empty struct{}

func (*empty) marshalWire(b []byte) ([]byte, error) { return b, nil }
func (*empty) unmarshalWire(b []byte) error         { return skipFields(b) }

type LogoutRequest struct{ empty }

type LogoutResponse struct{ empty }

type PingRequest struct{ empty }

type PingResponse struct {
	Status string
}

func (m *PingResponse) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.Status), nil
}

func (m *PingResponse) unmarshalWire(b []byte) error {
	*m = PingResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.Status)
		}
		return 0
	})
}

// Folder is a sealed folder as stored by the server. Ciphertext is opaque to
// the server and may be empty only for folders that were never sealed.
// CreatedAt comes back in UTC.
type Folder struct {
	ID         string
	Name       string
	Ciphertext []byte
	CreatedAt  time.Time
}

func (m *Folder) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendBytes(b, 3, m.Ciphertext)
	return appendTimestamp(b, 4, m.CreatedAt)
}

func (m *Folder) unmarshalWire(b []byte) error {
	*m = Folder{}
	var inner error
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeBytes(typ, b, &m.Ciphertext)
		case 4:
			return consumeTimestamp(typ, b, &m.CreatedAt, &inner)
		}
		return 0
	})
	if err != nil {
		return err
	}
	return inner
}

// folderEnvelope is the body of the responses carrying a single folder.
type folderEnvelope struct {
	Folder *Folder
}

func (m *folderEnvelope) marshalWire(b []byte) ([]byte, error) {
	if m.Folder == nil {
		return b, nil
	}
	return appendMessage(b, 1, m.Folder)
}

func (m *folderEnvelope) unmarshalWire(b []byte) error {
	*m = folderEnvelope{}
	var inner error
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		f := &Folder{}
		n := consumeMessage(typ, b, f, &inner)
		if n > 0 {
			m.Folder = f
		}
		return n
	})
	if err != nil {
		return err
	}
	return inner
}

type CreateFolderRequest struct {
	Name       string
	Ciphertext []byte
}

func (m *CreateFolderRequest) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.Name)
	return appendBytes(b, 2, m.Ciphertext), nil
}

func (m *CreateFolderRequest) unmarshalWire(b []byte) error {
	*m = CreateFolderRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeBytes(typ, b, &m.Ciphertext)
		}
		return 0
	})
}

type CreateFolderResponse struct {
	Folder *Folder
}

func (m *CreateFolderResponse) marshalWire(b []byte) ([]byte, error) {
	return (*folderEnvelope)(m).marshalWire(b)
}

func (m *CreateFolderResponse) unmarshalWire(b []byte) error {
	return (*folderEnvelope)(m).unmarshalWire(b)
}

// idRequest is the body of the requests naming a single folder.
type idRequest struct {
	ID string
}

func (m *idRequest) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.ID), nil
}

func (m *idRequest) unmarshalWire(b []byte) error {
	*m = idRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.ID)
		}
		return 0
	})
}

type GetFolderRequest struct {
	ID string
}

func (m *GetFolderRequest) marshalWire(b []byte) ([]byte, error) {
	return (*idRequest)(m).marshalWire(b)
}

func (m *GetFolderRequest) unmarshalWire(b []byte) error {
	return (*idRequest)(m).unmarshalWire(b)
}

type GetFolderResponse struct {
	Folder *Folder
}

func (m *GetFolderResponse) marshalWire(b []byte) ([]byte, error) {
	return (*folderEnvelope)(m).marshalWire(b)
}

func (m *GetFolderResponse) unmarshalWire(b []byte) error {
	return (*folderEnvelope)(m).unmarshalWire(b)
}

type UpdateFolderRequest struct {
	ID         string
	Ciphertext []byte
}

func (m *UpdateFolderRequest) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.ID)
	return appendBytes(b, 2, m.Ciphertext), nil
}

func (m *UpdateFolderRequest) unmarshalWire(b []byte) error {
	*m = UpdateFolderRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeBytes(typ, b, &m.Ciphertext)
		}
		return 0
	})
}

type UpdateFolderResponse struct{ empty }

type DeleteFolderRequest struct {
	ID string
}

func (m *DeleteFolderRequest) marshalWire(b []byte) ([]byte, error) {
	return (*idRequest)(m).marshalWire(b)
}

func (m *DeleteFolderRequest) unmarshalWire(b []byte) error {
	return (*idRequest)(m).unmarshalWire(b)
}

type DeleteFolderResponse struct{ empty }

type ListFoldersRequest struct{ empty }

type ListFoldersResponse struct {
	Folders []*Folder
}

func (m *ListFoldersResponse) marshalWire(b []byte) ([]byte, error) {
	var err error
	for _, f := range m.Folders {
		if f == nil {
			continue
		}
		if b, err = appendMessage(b, 1, f); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *ListFoldersResponse) unmarshalWire(b []byte) error {
	*m = ListFoldersResponse{}
	var inner error
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		f := &Folder{}
		n := consumeMessage(typ, b, f, &inner)
		if n > 0 {
			m.Folders = append(m.Folders, f)
		}
		return n
	})
	if err != nil {
		return err
	}
	return inner
}

type GetBackupUploadURLRequest struct {
	FileName string
}

func (m *GetBackupUploadURLRequest) marshalWire(b []byte) ([]byte, error) {
	return appendString(b, 1, m.FileName), nil
}

func (m *GetBackupUploadURLRequest) unmarshalWire(b []byte) error {
	*m = GetBackupUploadURLRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.FileName)
		}
		return 0
	})
}

type GetBackupUploadURLResponse struct {
	Key string
	URL string
}

func (m *GetBackupUploadURLResponse) marshalWire(b []byte) ([]byte, error) {
	b = appendString(b, 1, m.Key)
	return appendString(b, 2, m.URL), nil
}

func (m *GetBackupUploadURLResponse) unmarshalWire(b []byte) error {
	*m = GetBackupUploadURLResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Key)
		case 2:
			return consumeString(typ, b, &m.URL)
		}
		return 0
	})
}
