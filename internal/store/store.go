package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// Store is the persistence surface the messaging service depends on.
type Store interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, userID string, username any) error
	CreateMessage(ctx context.Context, msg NewMessage) (int64, error)
	ListMessagesByReceiver(ctx context.Context, receiver string) ([]Message, error)
	ListMessages(ctx context.Context) ([]Message, error)
	Ping(ctx context.Context) error
}

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	// EnforceForeignKeys only applies to SQLite; the other databases always enforce them.
	EnforceForeignKeys bool
	Debug              bool
}

type SQLStore struct {
	db      *sql.DB
	dialect dialect
	debug   bool
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore opens the database, verifies the connection and creates the
// schema if it does not exist yet.
func NewSQLStore(ctx context.Context, opts Options) (*SQLStore, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn := opts.DSN
	if d.name == "sqlite3" {
		dsn = sqliteDSN(dsn, opts.EnforceForeignKeys)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLStore{db: db, dialect: d, debug: opts.Debug}
	if err = s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations/"+s.dialect.name)
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}
	provider, err := goose.NewProvider(s.dialect.goose, s.db, fsys, goose.WithVerbose(s.debug))
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if s.debug {
		log.Printf("Applied %d migration(s) for %s", len(results), s.dialect.name)
	}
	return nil
}

// User methods
func (s *SQLStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT userid, username FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.UserID, &user.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user row. The identifier is supplied by the caller.
func (s *SQLStore) CreateUser(ctx context.Context, userID string, username any) error {
	query := s.dialect.rebind("INSERT INTO users (userid, username) VALUES (?, ?)")
	if _, err := s.db.ExecContext(ctx, query, userID, username); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Message methods

// CreateMessage inserts a message and returns its row id. Sender and receiver
// are not checked against users here.
func (s *SQLStore) CreateMessage(ctx context.Context, msg NewMessage) (int64, error) {
	query := "INSERT INTO messages (sender, receiver, message) VALUES (?, ?, ?)"
	if s.dialect.returningID {
		var id int64
		err := s.db.QueryRowContext(ctx, s.dialect.rebind(query+" RETURNING id"), msg.Sender, msg.Receiver, msg.Message).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert message: %w", err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, query, msg.Sender, msg.Receiver, msg.Message)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read message id: %w", err)
	}
	return id, nil
}

func (s *SQLStore) ListMessagesByReceiver(ctx context.Context, receiver string) ([]Message, error) {
	query := s.dialect.rebind("SELECT id, sender, receiver, message FROM messages WHERE receiver = ? ORDER BY id")
	return s.queryMessages(ctx, query, receiver)
}

func (s *SQLStore) ListMessages(ctx context.Context) ([]Message, error) {
	return s.queryMessages(ctx, "SELECT id, sender, receiver, message FROM messages ORDER BY id")
}

func (s *SQLStore) queryMessages(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Receiver, &msg.Message); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}
