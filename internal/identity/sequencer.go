package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tamzrod/jackdaw/internal/metrics"
	"github.com/tamzrod/jackdaw/internal/rng"
	"github.com/tamzrod/jackdaw/internal/settings"
)

// Outcome says which branch Ensure took.
type Outcome int

const (
	// OutcomeLoaded means a persisted identity was found and used as-is.
	OutcomeLoaded Outcome = iota + 1
	// OutcomeProvisioned means a new identity was synthesized and persisted.
	OutcomeProvisioned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeProvisioned:
		return "provisioned"
	default:
		return "unknown"
	}
}

// Sequencer produces the node identity at boot.
// It never fails: storage problems lead to a fresh identity, not an error.
type Sequencer struct {
	store   settings.Store
	src     rng.Source
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Sequencer)

func WithLogger(log *slog.Logger) Option {
	return func(s *Sequencer) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) { s.metrics = m }
}

// NewSequencer wires a sequencer. src must already be seeded.
func NewSequencer(store settings.Store, src rng.Source, opts ...Option) *Sequencer {
	s := &Sequencer{
		store: store,
		src:   src,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure returns the persisted identity, creating and persisting one first if
// the store has none.
func (s *Sequencer) Ensure(ctx context.Context) (Identity, Outcome) {
	id, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			s.log.Warn("persisted identity unusable, regenerating", "err", err)
		}
		id = s.provision(ctx)
		s.metrics.Provision(OutcomeProvisioned.String())
		return id, OutcomeProvisioned
	}

	s.metrics.Provision(OutcomeLoaded.String())
	return id, OutcomeLoaded
}

// load trusts the stored EUI-64 as long as it has the right size.
// A missing or malformed scalar falls back to its default without writing.
func (s *Sequencer) load(ctx context.Context) (Identity, error) {
	eui, err := s.loadEUI(ctx)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		EUI:     eui,
		Channel: s.uint8Or(ctx, settings.KeyChannel, DefaultChannel),
		PanID:   s.uint16Or(ctx, settings.KeyPanID, DefaultPanID),
		PanAddr: s.uint16Or(ctx, settings.KeyPanAddr, DefaultPanAddr),
		TxPower: s.uint8Or(ctx, settings.KeyTxPower, DefaultTxPower),
	}, nil
}

func (s *Sequencer) loadEUI(ctx context.Context) (EUI64, error) {
	var eui EUI64

	b, err := s.store.Get(ctx, settings.KeyEUI64)
	if err != nil {
		return eui, err
	}
	if len(b) != len(eui) {
		return eui, settings.ErrSize
	}
	copy(eui[:], b)
	return eui, nil
}

// provision is the write-once path. Each write is attempted even if an
// earlier one failed; the identity in hand is used regardless.
func (s *Sequencer) provision(ctx context.Context) Identity {
	id := Identity{
		EUI:     Generate(s.src),
		Channel: DefaultChannel,
		PanID:   DefaultPanID,
		PanAddr: DefaultPanAddr,
		TxPower: DefaultTxPower,
	}

	writes := []struct {
		key settings.Key
		put func() error
	}{
		{settings.KeyEUI64, func() error { return s.store.Set(ctx, settings.KeyEUI64, id.EUI[:]) }},
		{settings.KeyPanID, func() error { return settings.SetUint16(ctx, s.store, settings.KeyPanID, id.PanID) }},
		{settings.KeyPanAddr, func() error { return settings.SetUint16(ctx, s.store, settings.KeyPanAddr, id.PanAddr) }},
		{settings.KeyChannel, func() error { return settings.SetUint8(ctx, s.store, settings.KeyChannel, id.Channel) }},
		{settings.KeyTxPower, func() error { return settings.SetUint8(ctx, s.store, settings.KeyTxPower, id.TxPower) }},
	}
	for _, w := range writes {
		if err := w.put(); err != nil {
			s.log.Error("persist setting failed", "key", w.key.String(), "err", err)
		}
	}

	s.log.Info("provisioned new identity", "eui64", id.EUI.String())
	return id
}

func (s *Sequencer) uint8Or(ctx context.Context, key settings.Key, def uint8) uint8 {
	v, err := settings.GetUint8(ctx, s.store, key)
	if err != nil {
		s.log.Warn("setting unusable, using default", "key", key.String(), "default", def, "err", err)
		return def
	}
	return v
}

func (s *Sequencer) uint16Or(ctx context.Context, key settings.Key, def uint16) uint16 {
	v, err := settings.GetUint16(ctx, s.store, key)
	if err != nil {
		s.log.Warn("setting unusable, using default", "key", key.String(), "default", def, "err", err)
		return def
	}
	return v
}

// Load reads the persisted identity without provisioning.
// It returns settings.ErrNotFound when the node has never booted.
func Load(ctx context.Context, store settings.Store) (Identity, error) {
	return NewSequencer(store, nil).load(ctx)
}

// Clear removes the identity and radio settings so the next boot provisions afresh.
func Clear(ctx context.Context, store settings.Store) error {
	var errs []error
	for _, k := range []settings.Key{
		settings.KeyEUI64,
		settings.KeyChannel,
		settings.KeyPanID,
		settings.KeyPanAddr,
		settings.KeyTxPower,
	} {
		if err := store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
