package settings

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

// Key names one persisted record. Keys are two ASCII characters packed big-endian.
type Key uint16

func twoChar(a, b byte) Key { return Key(uint16(a)<<8 | uint16(b)) }

// Well-known keys.
var (
	KeyEUI64   = twoChar('E', '8')
	KeyChannel = twoChar('C', 'H')
	KeyPanID   = twoChar('P', 'N')
	KeyPanAddr = twoChar('P', 'A')
	KeyTxPower = twoChar('T', 'P')
)

func (k Key) String() string {
	hi, lo := byte(k>>8), byte(k)
	if hi >= 0x20 && hi <= 0x7E && lo >= 0x20 && lo <= 0x7E {
		return string([]byte{hi, lo})
	}
	return fmt.Sprintf("0x%04x", uint16(k))
}

var (
	// ErrNotFound means the key has never been written or was deleted.
	ErrNotFound = errors.New("settings: key not found")

	// ErrSize means the stored record does not have the expected length.
	ErrSize = errors.New("settings: unexpected value size")
)

// Store is a small key-value store over non-volatile memory.
type Store interface {
	// Get returns a copy of the record, or ErrNotFound.
	Get(ctx context.Context, key Key) ([]byte, error)
	// Set replaces the record.
	Set(ctx context.Context, key Key, value []byte) error
	// Delete removes the record. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error
	Close() error
}

// ---- typed helpers ----

// GetUint8 reads a one-byte record.
func GetUint8(ctx context.Context, s Store, key Key) (uint8, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if len(b) != 1 {
		return 0, fmt.Errorf("%w: key %s has %d bytes, want 1", ErrSize, key, len(b))
	}
	return b[0], nil
}

// GetUint16 reads a two-byte little-endian record.
func GetUint16(ctx context.Context, s Store, key Key) (uint16, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if len(b) != 2 {
		return 0, fmt.Errorf("%w: key %s has %d bytes, want 2", ErrSize, key, len(b))
	}
	return binary.LittleEndian.Uint16(b), nil
}

func SetUint8(ctx context.Context, s Store, key Key, v uint8) error {
	return s.Set(ctx, key, []byte{v})
}

func SetUint16(ctx context.Context, s Store, key Key, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return s.Set(ctx, key, b[:])
}
