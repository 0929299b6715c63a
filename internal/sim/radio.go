package sim

import (
	"log/slog"
	"sync"

	"github.com/tamzrod/jackdaw/internal/identity"
)

// RadioHooks receives transceiver power edges.
type RadioHooks interface {
	RadioOn()
	RadioOff()
}

// RadioState is what the radio was last configured with.
type RadioState struct {
	Initialized bool
	On          bool
	EUI         identity.EUI64
	PanID       uint16
	PanAddr     uint16
	Channel     uint8
	TxPower     uint8
}

// Radio is an in-memory transceiver. It is safe for concurrent use.
type Radio struct {
	log   *slog.Logger
	hooks RadioHooks

	mu    sync.Mutex
	state RadioState
}

func NewRadio(hooks RadioHooks, log *slog.Logger) *Radio {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Radio{hooks: hooks, log: log}
}

func (r *Radio) Init() {
	r.mu.Lock()
	r.state.Initialized = true
	r.mu.Unlock()
	r.log.Debug("radio init")
}

func (r *Radio) SetPanAddr(panID, panAddr uint16, eui identity.EUI64) {
	r.mu.Lock()
	r.state.PanID, r.state.PanAddr, r.state.EUI = panID, panAddr, eui
	r.mu.Unlock()
}

func (r *Radio) SetChannel(ch uint8) {
	r.mu.Lock()
	r.state.Channel = ch
	r.mu.Unlock()
}

func (r *Radio) SetTxPower(power uint8) {
	r.mu.Lock()
	r.state.TxPower = power
	r.mu.Unlock()
}

// On powers the transceiver up and reports the edge.
func (r *Radio) On() {
	r.mu.Lock()
	r.state.On = true
	r.mu.Unlock()
	if r.hooks != nil {
		r.hooks.RadioOn()
	}
}

func (r *Radio) Off() {
	r.mu.Lock()
	r.state.On = false
	r.mu.Unlock()
	if r.hooks != nil {
		r.hooks.RadioOff()
	}
}

func (r *Radio) State() RadioState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
