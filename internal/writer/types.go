// internal/writer/types.go
package writer

import "github.com/tamzrod/jackdaw/internal/status"

// EndpointClient is the exact contract the writer uses.
// Both transports write holding registers only.
type EndpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
	Close() error
}

// Plan is the fully-built mirror plan for this node.
type Plan struct {
	Transport string
	Endpoint  string
	UnitID    uint8
	BaseSlot  uint16
	Hostname  string
}

// BaseAddr is the first register of the node's block.
func (p Plan) BaseAddr() uint16 {
	return p.BaseSlot * status.SlotsPerNode
}

// StatusWriter is the delivery-only contract for node status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}
