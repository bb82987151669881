package app

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Presenter coordinates the single exclusive presenter slot. At most one
// identity holds it; a claim against an occupied slot is a silent no-op.
type Presenter struct {
	mu     sync.Mutex
	holder string // empty when vacant
}

func NewPresenter() *Presenter {
	return &Presenter{}
}

// Claim takes the slot for name if it is vacant. Reports whether the slot
// changed hands.
func (p *Presenter) Claim(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.holder != "" {
		return false
	}
	p.holder = name
	log.Info().Str("module", "app.presenter").Str("host", name).Msg("presenter claimed")
	return true
}

// Release vacates the slot, but only for its current holder.
func (p *Presenter) Release(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.holder != name || name == "" {
		return false
	}
	p.holder = ""
	log.Info().Str("module", "app.presenter").Str("host", name).Msg("presenter released")
	return true
}

// Holder returns the current holder, if any.
func (p *Presenter) Holder() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holder, p.holder != ""
}

// Holds reports whether name currently holds the slot.
func (p *Presenter) Holds(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return name != "" && p.holder == name
}
