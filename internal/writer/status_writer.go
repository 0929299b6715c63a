// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/jackdaw/internal/status"
)

// NodeStatusWriter keeps the node's status block in sync on one endpoint.
type NodeStatusWriter struct {
	plan Plan
	cli  EndpointClient

	needFull bool
	last     [3]uint16
	nameRegs []uint16
}

var liveSlots = [3]struct {
	slot uint16
	name string
}{
	{status.SlotStatusCode, "status"},
	{status.SlotLights, "lights"},
	{status.SlotUptime, "uptime"},
}

func NewNodeStatusWriter(plan Plan, cli EndpointClient) *NodeStatusWriter {
	return &NodeStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: status.EncodeHostname(plan.Hostname),
	}
}

// WriteStatus delivers a snapshot into status memory.
// The first call, and the first call after any failure, writes the whole
// block including identity and hostname. Later calls write only the live
// slots that changed.
func (sw *NodeStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.plan.BaseAddr()
	live := s.Live()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, sw.fullBlockRegs(s)); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = live
		return nil
	}

	var errs []string

	for i, ls := range liveSlots {
		if sw.last[i] == live[i] {
			continue
		}
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr+ls.slot, []uint16{live[i]}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", ls.slot, ls.name, err))
			continue
		}
		sw.last[i] = live[i]
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *NodeStatusWriter) fullBlockRegs(s status.Snapshot) []uint16 {
	regs := status.Encode(s)

	// Hostname always lives at the end of the block.
	for i := 0; i < status.SlotHostnameSlots && i < len(sw.nameRegs); i++ {
		regs[status.SlotHostnameStart+i] = sw.nameRegs[i]
	}

	return regs
}
