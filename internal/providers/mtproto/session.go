package mtproto

import (
	"context"
	"database/sql"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/gotd/td/crypto"
	"github.com/gotd/td/session"

	"github.com/sandevgo/tgsearch/pkg/log"
	"github.com/sandevgo/tgsearch/pkg/sqlite"
)

// OpenSession returns session storage for the file at path.
//
// Telethon .session files (SQLite) are imported into memory and never written back.
// Anything else is treated as a gotd JSON session and updated in place.
func OpenSession(ctx context.Context, path string) (session.Storage, error) {
	logger := log.FromCtx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open session file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat session file")
	}
	if info.IsDir() {
		return nil, errors.Errorf("session file %s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, errors.Errorf("session file %s is empty", path)
	}

	header := make([]byte, len(sqlite.Magic))
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errors.Wrap(err, "read session header")
	}

	if n == len(header) && string(header) == sqlite.Magic {
		logger.Debug().Str("path", path).Msg("importing telethon session")
		return importTelethon(ctx, path)
	}

	logger.Debug().Str("path", path).Msg("using gotd session file")
	return &session.FileStorage{Path: path}, nil
}

func importTelethon(ctx context.Context, path string) (session.Storage, error) {
	db, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "open telethon session")
	}
	defer db.Close()

	var (
		dcID    int
		address string
		port    int
		authKey []byte
	)
	row := db.QueryRowContext(ctx, `SELECT dc_id, server_address, port, auth_key FROM sessions LIMIT 1`)
	if err := row.Scan(&dcID, &address, &port, &authKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("telethon session has no saved login")
		}
		return nil, errors.Wrap(err, "read telethon session")
	}

	data, err := telethonData(dcID, address, port, authKey)
	if err != nil {
		return nil, err
	}

	storage := new(session.StorageMemory)
	loader := session.Loader{Storage: storage}
	if err := loader.Save(ctx, data); err != nil {
		return nil, errors.Wrap(err, "store imported session")
	}
	return storage, nil
}

func telethonData(dcID int, address string, port int, authKey []byte) (*session.Data, error) {
	var key crypto.Key
	if len(authKey) != len(key) {
		return nil, errors.Errorf("telethon auth key has %d bytes, want %d", len(authKey), len(key))
	}
	if address == "" || port <= 0 {
		return nil, errors.Errorf("telethon session has no server address")
	}
	copy(key[:], authKey)
	id := key.WithID().ID

	return &session.Data{
		DC:        dcID,
		Addr:      net.JoinHostPort(address, strconv.Itoa(port)),
		AuthKey:   key[:],
		AuthKeyID: id[:],
	}, nil
}
