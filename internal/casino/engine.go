package casino

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Roll derives a provably-fair number in [0,100) from the rotating server
// seed, the user's id and a per-user nonce, plus the full hash so clients
// can verify the draw once the seed is published.
func Roll(serverSeed, userSeed string, nonce int64) (float64, string) {
	hash := rollHash(serverSeed, userSeed, nonce)

	num, _ := strconv.ParseInt(hash[:8], 16, 64)
	roll := float64(num%10000) / 100

	return roll, hash
}

// DrawCard derives one card from the same hash stream. Cards are drawn
// independently (unbounded deck), so a persisted hand plus the nonce is all
// the state a session needs.
func DrawCard(serverSeed, userSeed string, nonce int64) Card {
	hash := rollHash(serverSeed, userSeed, nonce)

	num, _ := strconv.ParseInt(hash[8:16], 16, 64)
	return Card{
		Rank: int(num%13) + 1,
		Suit: int(num/13) % 4,
	}
}

func rollHash(serverSeed, userSeed string, nonce int64) string {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(userSeed + ":" + strconv.FormatInt(nonce, 10)))
	return hex.EncodeToString(h.Sum(nil))
}
