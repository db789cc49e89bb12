package games

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Game is per-game betting configuration. Rows are owned by an external
// administrative process; this service only reads them.
//
// Rates are integers: CancelTaxBps and LossBonusBps are basis points
// (10% == 1000), OddsX100 is decimal odds in hundredths (2.00x == 200).
type Game struct {
	ID                 uuid.UUID
	Name               string
	Description        *string
	MinBetMinor        int64
	MinBetCurrencyID   int32
	CancelTaxBps       int32
	OddsX100           int32
	LossBonusThreshold *int32
	LossBonusBps       int32
	CreatedAt          time.Time
}

type Games interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Game, error)
}
