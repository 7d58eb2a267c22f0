package action

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/consent"
	"github.com/electa-dev/electa/pkg/persist"
	"github.com/electa-dev/electa/pkg/toast"
	"github.com/electa-dev/electa/pkg/views"
)

// RejectedText is the error toast shown when an action trigger lacks the
// data it needs. Nothing is mutated.
const RejectedText = "That did not work. Please refresh the page and try again."

// Outcomes reported to an Observer.
const (
	OutcomeOK       = "ok"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
)

// State is the page context an action was fired from. Electorate is set on
// electorate pages and Party holds the active party filter there.
type State struct {
	Electorate string `json:"electorate,omitempty"`
	Party      string `json:"party,omitempty"`
}

// Message is the wire form of an action sent by the client.
type Message struct {
	Action string            `json:"action"`
	Data   map[string]string `json:"data"`
	State  State             `json:"state"`
}

// Observer records handled actions, typically as metrics.
type Observer interface {
	ObserveAction(kind, outcome string, elapsed time.Duration)
}

// Config holds the visitor's stores and the catalogue loaded for the
// request.
type Config struct {
	Votes   *persist.VoteStore
	Cart    *persist.CartStore
	Consent *consent.Store

	Directory catalog.Directory
	Products  []catalog.Product

	Logger   *slog.Logger
	Observer Observer
}

// Router dispatches actions to the visitor's stores and re-projects the
// views they affect.
type Router struct {
	cfg    Config
	logger *slog.Logger
}

// NewRouter creates a router for one visitor.
func NewRouter(cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:    cfg,
		logger: logger.With("component", "action"),
	}
}

// Handle decodes and dispatches a client message.
// Unknown markers are ignored and yield an empty result. Triggers with
// missing or malformed data yield an error toast before any mutation.
func (r *Router) Handle(ctx context.Context, msg Message) *Result {
	start := time.Now()

	a, err := Decode(msg.Action, msg.Data)
	if err == nil {
		err = r.validate(a)
	}
	if err != nil {
		if errors.Is(err, ErrUnknownAction) {
			r.logger.Debug("action ignored", "code", "E302", "marker", msg.Action)
			r.observe(KindUnknown, OutcomeIgnored, start)
			return &Result{}
		}

		kind := KindUnknown
		var fe *FieldError
		if errors.As(err, &fe) {
			kind = fe.Kind
		}
		r.logger.Warn("action rejected", "code", "E301", "kind", kind, "error", err)
		res := &Result{Kind: kind}
		toast.Error(res, RejectedText)
		r.observe(kind, OutcomeRejected, start)
		return res
	}

	res := r.Dispatch(ctx, msg.State, a)
	r.observe(a.Kind, OutcomeOK, start)
	return res
}

// Dispatch applies a decoded action. Store writes are best-effort: the
// affected views are re-projected from the store whether or not the write
// reached the medium.
func (r *Router) Dispatch(ctx context.Context, state State, a Action) *Result {
	res := &Result{Kind: a.Kind}

	switch a.Kind {
	case SaveVote:
		votes := r.cfg.Votes.Add(ctx, persist.Vote{Name: a.Name, Party: a.Party, Electorate: a.Electorate})
		r.votePatches(res, state, votes)

	case RemoveVote:
		votes := r.cfg.Votes.Remove(ctx, persist.VoteKey{Name: a.Name, Electorate: a.Electorate})
		r.votePatches(res, state, votes)

	case FilterParty:
		votes := r.cfg.Votes.Load(ctx)
		res.patch(views.TargetCandidateList, views.CandidateList(r.cfg.Directory, a.Electorate, a.Party, votes))

	case AddToCart:
		product, ok := catalog.FindProduct(r.cfg.Products, a.ItemID)
		if !ok {
			r.logger.Warn("action rejected", "code", "E301", "kind", a.Kind, "item", a.ItemID)
			toast.Error(res, RejectedText)
			break
		}
		r.cartPatches(res, r.cfg.Cart.AddItem(ctx, product.ID, product.Price))

	case RemoveCartItem:
		r.cartPatches(res, r.cfg.Cart.Remove(ctx, a.ItemID))

	case AcceptCookies:
		prefs, err := r.cfg.Consent.AcceptAll(ctx)
		r.decided(ctx, res, prefs, err, toast.TypeSuccess, views.AcceptedAllText)

	case RejectCookies:
		prefs, err := r.cfg.Consent.RejectAll(ctx)
		r.decided(ctx, res, prefs, err, toast.TypeInfo, views.RejectedAllText)

	case SaveCookies:
		prefs, err := r.cfg.Consent.SaveCustom(ctx, a.Pending)
		r.decided(ctx, res, prefs, err, toast.TypeSuccess, views.SavedPrefsText)

	case ToggleCookie:
		pending := a.Pending
		if a.Preference == consent.Analytics || a.Preference == consent.Advertising {
			pending = consent.Toggle(pending, a.Preference)
		} else {
			r.logger.Debug("toggle ignored", "preference", a.Preference)
		}
		res.patch(views.TargetCookieModal, views.CookieModal(pending, r.cfg.Consent.State(ctx), true))

	case RevokeCookies:
		err := r.cfg.Consent.Revoke(ctx)
		if err != nil {
			r.logger.Warn("consent revoke failed", "error", err)
		}
		r.consentPatches(ctx, res)
		if err == nil {
			prefs := consent.Defaults()
			res.Consent = &prefs
			res.Revoked = true
			toast.Info(res, views.RevokedText)
		}
	}

	return res
}

// validate checks a decoded action against the loaded catalogue.
func (r *Router) validate(a Action) error {
	if a.Kind == AddToCart {
		if _, ok := catalog.FindProduct(r.cfg.Products, a.ItemID); !ok {
			return &FieldError{Kind: a.Kind, Field: views.AttrItemID, Err: ErrUnknownItem}
		}
	}
	return nil
}

func (r *Router) votePatches(res *Result, state State, votes []persist.Vote) {
	res.patch(views.TargetMyVotes, views.MyVotes(votes))
	if state.Electorate != "" {
		res.patch(views.TargetCandidateList, views.CandidateList(r.cfg.Directory, state.Electorate, state.Party, votes))
	}
}

func (r *Router) cartPatches(res *Result, lines []persist.CartLine) {
	res.patch(views.TargetCartCount, views.CartBadge(views.CartCount(lines, r.cfg.Products)))
	res.patch(views.TargetCart, views.Cart(lines, r.cfg.Products))
}

// decided finishes an accept, reject or save. On a failed write the
// banner and modal are re-projected from what the medium holds and no
// confirmation is shown.
func (r *Router) decided(ctx context.Context, res *Result, prefs consent.Preferences, err error, level toast.Type, message string) {
	if err != nil {
		r.logger.Warn("consent save failed", "kind", res.Kind, "error", err)
		r.consentPatches(ctx, res)
		return
	}
	res.Consent = &prefs
	res.patch(views.TargetCookieBanner, views.CookieBanner(consent.Decided))
	res.patch(views.TargetCookieModal, views.CookieModal(prefs, consent.Decided, false))
	toast.Show(res, level, message)
}

func (r *Router) consentPatches(ctx context.Context, res *Result) {
	state := r.cfg.Consent.State(ctx)
	res.patch(views.TargetCookieBanner, views.CookieBanner(state))
	res.patch(views.TargetCookieModal, views.CookieModal(r.cfg.Consent.Load(ctx), state, false))
}

func (r *Router) observe(kind Kind, outcome string, start time.Time) {
	if r.cfg.Observer != nil {
		r.cfg.Observer.ObserveAction(kind.String(), outcome, time.Since(start))
	}
}
