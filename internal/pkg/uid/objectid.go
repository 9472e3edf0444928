package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrNodeIdentityUnavailable indicates no stable node identity is available.
var ErrNodeIdentityUnavailable = errors.New("uid: cannot determine stable node identity")

// ObjectIDGenerator generates 32-byte identifiers rendered as 64-char hex.
// The layout mixes a millisecond timestamp, a stable node fingerprint, the
// process ID, a monotonic counter, and random tail bytes, so IDs sort
// roughly by creation time while staying unguessable.
type ObjectIDGenerator struct {
	nodeID  [6]byte
	pid     uint16
	counter uint32
}

// NewObjectIDGenerator creates a generator with a stable node identity
// derived from /etc/machine-id or, failing that, the hostname.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	g := &ObjectIDGenerator{pid: uint16(os.Getpid())}

	src, err := nodeIdentity()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256([]byte(src))
	copy(g.nodeID[:], sum[:6])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter = uint32(seed[0])<<24 | uint32(seed[1])<<16 | uint32(seed[2])<<8 | uint32(seed[3])

	return g, nil
}

func nodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}
	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}
	return "", ErrNodeIdentityUnavailable
}

// Generate returns a 64-char hex string representing 32 bytes.
func (g *ObjectIDGenerator) Generate() string {
	var raw [32]byte

	// 6-byte millisecond timestamp, big-endian.
	ts := uint64(time.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		raw[i] = byte(ts >> (40 - 8*i))
	}

	copy(raw[6:12], g.nodeID[:])

	raw[12] = byte(g.pid >> 8)
	raw[13] = byte(g.pid)

	c := atomic.AddUint32(&g.counter, 1)
	raw[14] = byte(c >> 24)
	raw[15] = byte(c >> 16)
	raw[16] = byte(c >> 8)
	raw[17] = byte(c)

	// 14 random tail bytes. On entropy failure, fall back to hashing the
	// deterministic prefix so the ID stays unique within this process.
	if _, err := rand.Read(raw[18:]); err != nil {
		sum := sha256.Sum256(raw[:18])
		copy(raw[18:], sum[:14])
	}

	var buf [64]byte
	hex.Encode(buf[:], raw[:])
	return string(buf[:])
}
