package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/electa-dev/electa/pkg/consent"
	"github.com/electa-dev/electa/pkg/persist"
	"github.com/electa-dev/electa/pkg/render"
	"github.com/electa-dev/electa/pkg/storage"
)

// VisitorCookieName names the cookie that keys a browser's persisted sets.
const VisitorCookieName = "electa_visitor"

// visitorCookieMaxAge keeps saved votes and carts for a year.
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// visitorID returns the visitor id carried by r, or a fresh one together
// with the cookie that remembers it. The cookie is nil when r already
// carries a valid id or when no cookie may be issued; the fresh id then
// only lasts for this request.
func (s *Server) visitorID(r *http.Request) (string, *http.Cookie) {
	if c, err := r.Cookie(VisitorCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), nil
		}
	}

	id := uuid.NewString()
	secure, err := s.cookieSecureFlag(r)
	if err != nil {
		s.logger.Warn("visitor cookie not issued", "error", err, "path", r.URL.Path)
		return id, nil
	}
	return id, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   visitorCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// visitor is the per-request view of one visitor's persisted state.
type visitor struct {
	id      string
	votes   *persist.VoteStore
	cart    *persist.CartStore
	consent *consent.Store
	scripts *scriptInjector
}

// openVisitor identifies the visitor, setting the cookie on w when one is
// issued, and opens their stores. Consent decisions made through the
// returned stores reach the script injector and the metrics.
func (s *Server) openVisitor(w http.ResponseWriter, r *http.Request) *visitor {
	id, cookie := s.visitorID(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	return s.newVisitor(id)
}

func (s *Server) newVisitor(id string) *visitor {
	local := storage.Scope(s.config.Storage, id)
	logger := s.logger.With("visitor", id)

	bus := consent.NewBus()
	scripts := newScriptInjector(s.config.AdSenseClient, s.config.AnalyticsID)
	consent.Subscribe(bus, scripts, scripts, logger)
	if s.config.Metrics != nil {
		bus.Subscribe(s.config.Metrics.ConsentListener())
	}

	cartOpts := []persist.Option{persist.WithLogger(logger)}
	if s.config.MaxCartQuantity > 0 {
		cartOpts = append(cartOpts, persist.WithMaxQuantity(s.config.MaxCartQuantity))
	}

	return &visitor{
		id:      id,
		votes:   persist.NewVoteStore(local, persist.WithLogger(logger)),
		cart:    persist.NewCartStore(local, cartOpts...),
		consent: consent.NewStore(local, consent.WithBus(bus), consent.WithLogger(logger)),
		scripts: scripts,
	}
}

// headScripts resolves the scripts the visitor's stored consent allows.
func (v *visitor) headScripts(ctx context.Context, prefs consent.Preferences) []render.ScriptTag {
	if v.consent.State(ctx) != consent.Decided {
		return nil
	}
	inj := v.scripts.fresh()
	_ = consent.Apply(ctx, prefs, inj, inj)
	return inj.scripts
}
