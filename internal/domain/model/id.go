package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// generateID creates a unique ID with a timestamp prefix so journal rows sort
// by creation time.
func generateID() string {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().UTC().UnixMilli()))
	_, _ = rand.Read(buf[8:])
	return hex.EncodeToString(buf)
}
