package identity

import (
	"fmt"
	"strings"

	"github.com/tamzrod/jackdaw/internal/rng"
)

// EUI64 is the node's 64-bit extended unique identifier.
type EUI64 [8]byte

// String formats the address as eight dash-separated hex octets.
func (e EUI64) String() string {
	parts := make([]string, len(e))
	for i, b := range e {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, "-")
}

// LocallyAdministered reports whether the U/L bit of the first octet is set.
func (e EUI64) LocallyAdministered() bool { return e[0]&0x02 != 0 }

// Unicast reports whether the I/G bit of the first octet is clear.
func (e EUI64) Unicast() bool { return e[0]&0x01 == 0 }

// ---- defaults written on first boot ----

const (
	DefaultChannel uint8  = 26
	DefaultPanID   uint16 = 0xABCD
	DefaultPanAddr uint16 = 0xFFFF
	DefaultTxPower uint8  = 0
)

// administrativeOctet marks a synthesized address as local and unicast.
const administrativeOctet = 0x02

// Identity is what the radio and the protocol stack need to join the network.
// It is fixed for the lifetime of the process and passed by value.
type Identity struct {
	EUI     EUI64
	Channel uint8
	PanID   uint16
	PanAddr uint16
	TxPower uint8
}

// Generate synthesizes a new address: 02 r r FF FE r r r.
// Octets 3 and 4 are the FF-FE filler used when deriving an EUI-64 from a 48-bit MAC.
func Generate(src rng.Source) EUI64 {
	var e EUI64
	e[0] = administrativeOctet
	e[1] = src.NextByte()
	e[2] = src.NextByte()
	e[3] = 0xFF
	e[4] = 0xFE
	e[5] = src.NextByte()
	e[6] = src.NextByte()
	e[7] = src.NextByte()
	return e
}
