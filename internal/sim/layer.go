package sim

import (
	"log/slog"
	"sync"

	"github.com/tamzrod/jackdaw/internal/identity"
)

// Layer names match the stack the adapter firmware ships with.
const (
	LayerRDC     = "nullrdc"
	LayerMAC     = "sicslowmac"
	LayerNetwork = "sicslowpan"
)

// Layer is a protocol layer that only records its bring-up.
type Layer struct {
	name string
	log  *slog.Logger

	mu       sync.Mutex
	inited   bool
	nodeAddr *identity.EUI64
}

func NewLayer(name string, log *slog.Logger) *Layer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Layer{name: name, log: log}
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) Init() {
	l.mu.Lock()
	l.inited = true
	l.mu.Unlock()
	l.log.Debug("layer init", "layer", l.name)
}

func (l *Layer) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inited
}

// SetNodeAddr records the link-layer address the layer was given.
func (l *Layer) SetNodeAddr(eui identity.EUI64) {
	l.mu.Lock()
	l.nodeAddr = &eui
	l.mu.Unlock()
}

// NodeAddr returns the recorded address; ok is false if none was set.
func (l *Layer) NodeAddr() (identity.EUI64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.nodeAddr == nil {
		return identity.EUI64{}, false
	}
	return *l.nodeAddr, true
}
