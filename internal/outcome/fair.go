package outcome

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync/atomic"
)

// Fair is a provably-fair provider: each decision is an HMAC-SHA256
// roll over server seed, client seed and a monotonically increasing
// nonce. Publishing the server seed afterwards lets a player re-derive
// every roll.
type Fair struct {
	serverSeed string
	clientSeed string
	winBps     int32
	nonce      atomic.Uint64
}

// NewFair wins when the roll lands below winBps out of 10000
// (4900 == 49% win chance, a 1% edge on an even-money game).
func NewFair(serverSeed, clientSeed string, winBps int32) *Fair {
	return &Fair{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		winBps:     winBps,
	}
}

func (f *Fair) DetermineOutcome() bool {
	n := f.nonce.Add(1)

	return Roll(f.serverSeed, f.clientSeed, n) < uint32(f.winBps)
}

// Roll derives a number in [0, 10000) from the seed pair and nonce.
func Roll(serverSeed, clientSeed string, nonce uint64) uint32 {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(clientSeed + ":" + strconv.FormatUint(nonce, 10)))

	digest := hex.EncodeToString(h.Sum(nil))
	num, _ := strconv.ParseUint(digest[:8], 16, 64)

	return uint32(num % 10_000)
}
