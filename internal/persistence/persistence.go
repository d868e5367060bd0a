// Package persistence reads and writes the whole application State as one
// JSON document held in a durable key-value slot.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	enc "github.com/MrJamesThe3rd/tpv/internal/encoding"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// ErrSlotEmpty is returned by a Slot when nothing has been stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

//go:generate mockgen -source=persistence.go -destination=slot_mock.go -package=persistence
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

type Adapter struct {
	slot Slot
	key  string
	now  func() time.Time
}

type Option func(*Adapter)

// WithClock sets the clock used to date the sample dataset.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

func NewAdapter(slot Slot, key string, opts ...Option) *Adapter {
	a := &Adapter{
		slot: slot,
		key:  key,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Load returns the stored state, or the sample dataset when the slot is empty.
func (a *Adapter) Load(ctx context.Context) (*pos.State, error) {
	data, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrSlotEmpty) {
		return pos.SampleState(a.now()), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", a.key, err)
	}

	return Decode(data)
}

// Save serialises s and overwrites the slot. Errors are returned as-is to the
// caller; nothing is retried.
func (a *Adapter) Save(ctx context.Context, s *pos.State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	if err := a.slot.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("writing slot %q: %w", a.key, err)
	}

	return nil
}

// Import reads a state document in any common text encoding, applies the
// load-time migrations and stores it, replacing whatever the slot held.
func (a *Adapter) Import(ctx context.Context, r io.Reader) (*pos.State, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if err := a.Save(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Export writes the current document as indented JSON.
func (a *Adapter) Export(ctx context.Context, w io.Writer) error {
	s, err := a.Load(ctx)
	if err != nil {
		return err
	}

	data, err := Encode(s)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent document: %w", err)
	}

	buf.WriteByte('\n')

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}
