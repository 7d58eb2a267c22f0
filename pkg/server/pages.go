package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/consent"
	"github.com/electa-dev/electa/pkg/contribute"
	"github.com/electa-dev/electa/pkg/render"
	"github.com/electa-dev/electa/pkg/vdom"
	"github.com/electa-dev/electa/pkg/views"
)

const siteName = "Electa"

// page describes one rendered document.
type page struct {
	status      int
	title       string
	description string
	active      string // nav link marked active
	body        *vdom.VNode
}

// renderPage renders p inside the site shell: header with cart badge,
// consent overlays and the scripts the visitor consented to.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, v *visitor, p page) {
	ctx := r.Context()
	prefs := v.consent.Load(ctx)

	title := siteName
	if p.title != "" {
		title = p.title + " | " + siteName
	}
	data := render.PageData{
		Title:        title,
		Description:  p.description,
		StyleSheets:  []string{StyleSheetPath},
		Scripts:      v.headScripts(ctx, prefs),
		Header:       views.SiteHeader(p.active, views.CartCount(v.cart.Load(ctx), s.config.Catalog.LoadShop(ctx))),
		Body:         vdom.Main(vdom.ID("main"), p.body),
		Footer:       views.SiteFooter(),
		Overlays:     views.ConsentOverlays(prefs, v.consent.State(ctx)),
		ClientScript: ClientScriptPath,
	}
	if s.config.EnableWebSocket {
		data.SocketEndpoint = "/ws"
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, data); err != nil {
		s.logger.Error("render page failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := p.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		description: "Find the candidates standing in your electorate.",
		active:      "/",
		body:        views.HomePage(),
	})
}

func (s *Server) handleElectorates(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	dir := s.config.Catalog.LoadDirectory(r.Context())
	s.renderPage(w, r, v, page{
		title:  "Electorates",
		active: "/electorates",
		body:   views.ElectorateIndex(dir),
	})
}

// handleElectorate renders one electorate. The path segment matches the
// directory case-insensitively; an unknown electorate still renders the
// empty list, with a 404.
func (s *Server) handleElectorate(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	ctx := r.Context()

	raw := chi.URLParam(r, "electorate")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	dir := s.config.Catalog.LoadDirectory(ctx)

	electorate, found := resolveElectorate(dir, raw)
	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	party := r.URL.Query().Get("party")

	s.renderPage(w, r, v, page{
		status: status,
		title:  electorate,
		active: "/electorates",
		body:   views.ElectoratePage(dir, electorate, party, v.votes.Load(ctx)),
	})
}

func resolveElectorate(dir catalog.Directory, name string) (string, bool) {
	for _, e := range dir.Electorates() {
		if strings.EqualFold(e, name) {
			return e, true
		}
	}
	return name, false
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	dir := s.config.Catalog.LoadDirectory(r.Context())

	body, found := views.Profile(dir, r.URL.Query().Get("candidate"))
	p := page{title: "Candidate Profile", active: "/electorates", body: body}
	if !found {
		p.status = http.StatusNotFound
		p.title = views.ProfileNotFoundTitle
	}
	s.renderPage(w, r, v, p)
}

func (s *Server) handleVotes(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		title:  "My Votes",
		active: "/votes",
		body:   views.VotesPage(v.votes.Load(r.Context())),
	})
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		title:  "Shop",
		active: "/shop",
		body:   views.ShopPage(s.config.Catalog.LoadShop(r.Context())),
	})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	ctx := r.Context()
	s.renderPage(w, r, v, page{
		title:  "Cart",
		active: "/cart",
		body:   views.CartPage(v.cart.Load(ctx), s.config.Catalog.LoadShop(ctx)),
	})
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		title:  "Blog",
		active: "/blog",
		body:   views.BlogPage(s.config.Catalog.LoadArticles(r.Context())),
	})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	ctx := r.Context()

	id := r.URL.Query().Get("id")
	a, err := catalog.FindArticle(s.config.Catalog.LoadArticles(ctx), id)
	if err != nil {
		s.renderPage(w, r, v, page{
			status: http.StatusNotFound,
			title:  views.ArticleNotFound,
			active: "/blog",
			body:   views.ArticleNotFoundPage(),
		})
		return
	}

	ads := v.consent.HasConsentFor(ctx, consent.Advertising)
	s.renderPage(w, r, v, page{
		title:       a.Title,
		description: a.Excerpt,
		active:      "/blog",
		body:        views.ArticlePage(a, s.pageURL(r), ads),
	})
}

// pageURL rebuilds the absolute address of r for share links.
func (s *Server) pageURL(r *http.Request) string {
	scheme := "http"
	if s.isRequestSecure(r) {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: r.URL.RawQuery}
	return u.String()
}

func (s *Server) handleContributeForm(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		title:  "Contribute",
		active: "/contribute",
		body:   views.ContributeForm(contribute.Submission{}, ""),
	})
}

// handleContributeSubmit validates the form and hands the visitor's mail
// client a prefilled message. Invalid submissions re-render the form with
// the problem and the typed text.
func (s *Server) handleContributeSubmit(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	sub := contribute.Submission{
		Type:    r.PostForm.Get("type"),
		Message: r.PostForm.Get("message"),
	}

	if err := contribute.Validate(sub); err != nil {
		var verr *contribute.ValidationError
		if !errors.As(err, &verr) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		s.logger.Debug("contribution rejected", "error", errors.Unwrap(verr))
		s.renderPage(w, r, v, page{
			status: http.StatusUnprocessableEntity,
			title:  "Contribute",
			active: "/contribute",
			body:   views.ContributeForm(sub, verr.Message),
		})
		return
	}

	mailto, err := s.config.Mailer.MailtoURL(sub)
	if err != nil {
		s.logger.Error("build mailto failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, mailto, http.StatusSeeOther)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	v := s.openVisitor(w, r)
	s.renderPage(w, r, v, page{
		status: http.StatusNotFound,
		title:  "Page Not Found",
		body:   views.NotFoundPage(),
	})
}
