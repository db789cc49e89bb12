package players

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrEmailTaken     = errors.New("email already registered")
)

type Player struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Players interface {
	Insert(tx *sql.Tx, p Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*Player, error)
	GetByUsername(ctx context.Context, username string) (*Player, error)
}
