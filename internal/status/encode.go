// internal/status/encode.go
package status

// Encode converts a Snapshot into a full node status block without the hostname.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerNode)

	live := s.Live()
	regs[SlotStatusCode] = live[0]
	regs[SlotLights] = live[1]
	regs[SlotUptime] = live[2]

	eui := s.Identity.EUI
	for i := 0; i < SlotEUISlots; i++ {
		regs[SlotEUIStart+i] = uint16(eui[2*i])<<8 | uint16(eui[2*i+1])
	}
	regs[SlotChannel] = uint16(s.Identity.Channel)
	regs[SlotPanID] = s.Identity.PanID
	regs[SlotPanAddr] = s.Identity.PanAddr
	regs[SlotTxPower] = uint16(s.Identity.TxPower)

	return regs
}

// EncodeHostname packs up to 16 ASCII characters into 8 registers.
// Each register stores two ASCII bytes in big-endian order; anything
// outside printable ASCII becomes '?'.
func EncodeHostname(name string) []uint16 {
	out := make([]uint16, SlotHostnameSlots)

	b := []byte(name)
	if len(b) > HostnameMaxChars {
		b = b[:HostnameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < HostnameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
