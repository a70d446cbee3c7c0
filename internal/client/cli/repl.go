package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/client/client"
	"github.com/dmitrijs2005/gophvault/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	CreateFolder(ctx context.Context) error
	List(ctx context.Context) error
	Status(ctx context.Context) error
	Unlock(ctx context.Context) error
	EditNotes(ctx context.Context) error
	AddFile(ctx context.Context) error
	RemoveFile(ctx context.Context) error
	GetFile(ctx context.Context) error
	DeleteFolder(ctx context.Context) error
	Backup(ctx context.Context) error
	UploadBackup(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: create, (l)ist, status, unlock, notes, addfile, rmfile, getfile, delete, backup, upload, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns
// on scanner EOF or on "exit"/"quit". Command errors are printed and the
// loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gv %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "create":
			err = a.CreateFolder(ctx)
		case "l", "list":
			err = a.List(ctx)
		case "status":
			err = a.Status(ctx)
		case "unlock", "show":
			err = a.Unlock(ctx)
		case "notes":
			err = a.EditNotes(ctx)
		case "addfile":
			err = a.AddFile(ctx)
		case "rmfile":
			err = a.RemoveFile(ctx)
		case "getfile":
			err = a.GetFile(ctx)
		case "delete":
			err = a.DeleteFolder(ctx)
		case "backup":
			err = a.Backup(ctx)
		case "upload":
			err = a.UploadBackup(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

// describeError renders err for the user. Engine errors map to fixed
// messages so no key material or ciphertext detail leaks to the terminal.
func describeError(err error) string {
	var (
		invalid   *common.InvalidKeyError
		locked    *common.LockedError
		lockedOut *common.LockedOutError
	)
	switch {
	case errors.As(err, &lockedOut):
		return fmt.Sprintf("too many failed attempts, folder blocked until %s", lockedOut.Until.Local().Format(time.DateTime))
	case errors.As(err, &locked):
		return fmt.Sprintf("folder is locked, try again in %s", locked.Remaining.Round(time.Second))
	case errors.As(err, &invalid):
		return fmt.Sprintf("invalid key, %d attempts remaining", invalid.AttemptsRemaining)
	}

	switch common.KindOf(err) {
	case common.KindInvalidKey:
		return "invalid key"
	case common.KindEncoding:
		return "folder content could not be encoded"
	case common.KindStorageUnavailable:
		return "storage unavailable, try again later"
	}

	switch {
	case errors.Is(err, common.ErrNotSignedIn):
		return "please log in first"
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, common.ErrorUnauthorized):
		return "wrong user name or password"
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return "no offline credentials on this device, log in online first"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already exists"
	}
	return err.Error()
}
