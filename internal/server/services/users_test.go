package services

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	sm "github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	salt32     = bytes.Repeat([]byte{1}, 32)
	verifier32 = bytes.Repeat([]byte{2}, 32)
)

func TestRegister(t *testing.T) {
	db, _ := newSQLMockDB(t)

	ok := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{createOut: &sm.User{ID: "42", UserName: "alice"}}}, testConfig())
	u, err := ok.Register(context.Background(), " alice ", salt32, verifier32)
	require.NoError(t, err)
	assert.Equal(t, "42", u.ID)

	taken := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}}, testConfig())
	_, err = taken.Register(context.Background(), "bob", salt32, verifier32)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	broken := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{createErr: errBoom}}, testConfig())
	_, err = broken.Register(context.Background(), "bob", salt32, verifier32)
	assert.Regexp(t, regexp.MustCompile(`error creating user: .*boom`), err.Error())

	for name, args := range map[string]struct {
		user     string
		salt     []byte
		verifier []byte
	}{
		"empty name":     {"  ", salt32, verifier32},
		"short salt":     {"carol", []byte("s"), verifier32},
		"short verifier": {"carol", salt32, []byte("v")},
	} {
		_, err := ok.Register(context.Background(), args.user, args.salt, args.verifier)
		assert.ErrorIs(t, err, common.ErrInvalidArgument, name)
	}
}

func TestGetSalt_Found_NotFound_Internal(t *testing.T) {
	db, _ := newSQLMockDB(t)

	s := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getOut: &sm.User{Salt: []byte("SALT")}}}, testConfig())
	salt, err := s.GetSalt(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "SALT", string(salt))

	s2 := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}, testConfig())
	salt2, err := s2.GetSalt(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Len(t, salt2, 32)

	s3 := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom}}, testConfig())
	_, err = s3.GetSalt(context.Background(), "xx")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestGetSalt_UnknownUserIsStable(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	ctx := context.Background()

	s := NewUserService(db, repo, testConfig())
	first, err := s.GetSalt(ctx, "ghost")
	require.NoError(t, err)
	second, err := s.GetSalt(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := s.GetSalt(ctx, "phantom")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	cfg := testConfig()
	cfg.SecretKey = cfg.SecretKey + "-rotated"
	rotated, err := NewUserService(db, repo, cfg).GetSalt(ctx, "ghost")
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated)
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)

	sNF := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}, r: &fakeRefreshRepo{}}, testConfig())
	_, err := sNF.Login(context.Background(), "ghost", []byte("x"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	sIE := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom}, r: &fakeRefreshRepo{}}, testConfig())
	_, err = sIE.Login(context.Background(), "u", []byte("x"))
	assert.ErrorIs(t, err, common.ErrorInternal)

	user := &sm.User{ID: "u1", Verifier: []byte("right")}

	sWV := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: &fakeRefreshRepo{}}, testConfig())
	_, err = sWV.Login(context.Background(), "u", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	refresh := &fakeRefreshRepo{}
	sOK := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: refresh}, testConfig())
	pair, err := sOK.Login(context.Background(), "u", []byte("right"))
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, []string{"u1"}, refresh.created)

	uid, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	sCE := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: &fakeRefreshRepo{createErr: errBoom}}, testConfig())
	_, err = sCE.Login(context.Background(), "u", []byte("right"))
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	refresh := &fakeRefreshRepo{findOut: &sm.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)}}
	s := NewUserService(db, &fakeRepoManager{r: refresh}, testConfig())

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, "refresh-xyz", pair.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Failures(t *testing.T) {
	live := &sm.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)}

	t.Run("expired", func(t *testing.T) {
		db, _ := newSQLMockDB(t)
		r := &fakeRefreshRepo{findOut: &sm.RefreshToken{UserID: "u1", Expires: time.Now().Add(-time.Minute)}}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
	})

	t.Run("unknown", func(t *testing.T) {
		db, _ := newSQLMockDB(t)
		r := &fakeRefreshRepo{findErr: common.ErrorNotFound}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("find error", func(t *testing.T) {
		db, _ := newSQLMockDB(t)
		r := &fakeRefreshRepo{findErr: errBoom}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "error searching refresh token")
	})

	t.Run("delete error rolls back", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		r := &fakeRefreshRepo{findOut: live, delErr: errBoom}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create error rolls back", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		r := &fakeRefreshRepo{findOut: live, createErr: errBoom}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.ErrorIs(t, err, common.ErrorInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		mock.ExpectBegin().WillReturnError(errBoom)
		r := &fakeRefreshRepo{findOut: live}
		_, err := NewUserService(db, &fakeRepoManager{r: r}, testConfig()).RefreshToken(context.Background(), "r")
		assert.True(t, errors.Is(err, errBoom))
	})
}

func TestLogout(t *testing.T) {
	db, _ := newSQLMockDB(t)

	r := &fakeRefreshRepo{}
	require.NoError(t, NewUserService(db, &fakeRepoManager{r: r}, testConfig()).Logout(context.Background(), "u1"))
	assert.Equal(t, "u1", r.deletedUser)

	err := NewUserService(db, &fakeRepoManager{r: &fakeRefreshRepo{delErr: errBoom}}, testConfig()).Logout(context.Background(), "u1")
	assert.ErrorIs(t, err, errBoom)
}
