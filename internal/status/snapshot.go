// internal/status/snapshot.go
package status

import "github.com/tamzrod/jackdaw/internal/identity"

// Snapshot is exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Code   uint16
	Lights uint16
	Uptime uint32 // seconds; Encode saturates it

	Identity identity.Identity
}

// Live returns the three incrementally written slots.
func (s Snapshot) Live() [3]uint16 {
	up := s.Uptime
	if up > UptimeMax {
		up = UptimeMax
	}
	return [3]uint16{s.Code, s.Lights, uint16(up)}
}
