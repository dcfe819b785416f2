package dashboard

import (
	"sync"

	"github.com/valeriaulyamaeva/ga-financas/internal/session"
)

// Registry хранит Composer для каждой сессии.
type Registry struct {
	source Source
	opts   Options

	mu        sync.Mutex
	composers map[string]*Composer
}

func NewRegistry(source Source, opts Options) *Registry {
	return &Registry{source: source, opts: opts, composers: make(map[string]*Composer)}
}

// For возвращает Composer сессии, создавая его при первом обращении.
func (r *Registry) For(sess *session.Session) *Composer {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.composers[sess.ID]
	if !ok {
		c = NewComposer(sess, r.source, r.opts)
		r.composers[sess.ID] = c
	}
	return c
}

// Lookup Composer сессии без создания.
func (r *Registry) Lookup(sessionID string) (*Composer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.composers[sessionID]
	return c, ok
}

func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.composers, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.composers)
}

func (r *Registry) all() []*Composer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Composer, 0, len(r.composers))
	for _, c := range r.composers {
		out = append(out, c)
	}
	return out
}
