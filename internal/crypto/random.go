package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrRandomUnavailable is returned when the secure random source cannot be read.
var ErrRandomUnavailable = errors.New("secure random source unavailable")

// randUint32 reads a single uint32 from r.
func randUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// randIndex maps one uint32 draw onto [0, n) by modulo reduction.
//
// When n does not divide 2^32 the lower indices are very slightly favoured
// (at most n/2^32 relative bias). This is a known limitation and is kept so
// outputs match the established sampling scheme.
func randIndex(r io.Reader, n int) (int, error) {
	v, err := randUint32(r)
	if err != nil {
		return 0, err
	}
	return int(v % uint32(n)), nil
}
