package status

import (
	"testing"

	"github.com/tamzrod/jackdaw/internal/identity"
)

func TestEncodeLayout(t *testing.T) {
	s := Snapshot{
		Code:   CodeReady,
		Lights: 0x9,
		Uptime: 42,
		Identity: identity.Identity{
			EUI:     identity.EUI64{0x02, 0x11, 0x22, 0xFF, 0xFE, 0x33, 0x44, 0x55},
			Channel: 26,
			PanID:   0xABCD,
			PanAddr: 0xFFFF,
			TxPower: 3,
		},
	}

	regs := Encode(s)
	if len(regs) != SlotsPerNode {
		t.Fatalf("block size: got=%d want=%d", len(regs), SlotsPerNode)
	}

	want := map[int]uint16{
		SlotStatusCode:   CodeReady,
		SlotLights:       0x9,
		SlotUptime:       42,
		SlotEUIStart:     0x0211,
		SlotEUIStart + 1: 0x22FF,
		SlotEUIStart + 2: 0xFE33,
		SlotEUIStart + 3: 0x4455,
		SlotChannel:      26,
		SlotPanID:        0xABCD,
		SlotPanAddr:      0xFFFF,
		SlotTxPower:      3,
	}
	for slot, v := range want {
		if regs[slot] != v {
			t.Fatalf("slot %d: got=0x%04x want=0x%04x", slot, regs[slot], v)
		}
	}

	for _, slot := range []int{3, 4, 13, 14, 15} {
		if regs[slot] != 0 {
			t.Fatalf("reserved slot %d not zero: %d", slot, regs[slot])
		}
	}
	for slot := SlotHostnameStart; slot <= SlotHostnameEnd; slot++ {
		if regs[slot] != 0 {
			t.Fatalf("hostname slot %d written by Encode", slot)
		}
	}
}

func TestUptimeSaturates(t *testing.T) {
	regs := Encode(Snapshot{Uptime: 1 << 20})
	if regs[SlotUptime] != UptimeMax {
		t.Fatalf("uptime must not wrap: got=%d", regs[SlotUptime])
	}
}

func TestEncodeHostname(t *testing.T) {
	regs := EncodeHostname("jd\x01")
	if regs[0] != uint16('j')<<8|uint16('d') {
		t.Fatalf("first pair: got=0x%04x", regs[0])
	}
	if regs[1] != uint16('?')<<8 {
		t.Fatalf("non-printable must become '?': got=0x%04x", regs[1])
	}

	long := EncodeHostname("abcdefghijklmnopqrstuvwxyz")
	if long[SlotHostnameSlots-1] != uint16('o')<<8|uint16('p') {
		t.Fatalf("hostname must be cut at %d chars: got=0x%04x", HostnameMaxChars, long[SlotHostnameSlots-1])
	}
}
