package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"moto-repaint-backend/internal/content"
	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/showcase"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Static serves the embedded stylesheet and scripts under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type pageBase struct {
	Lang  string
	Title string
	Site  *content.Site
}

type landingPage struct {
	pageBase
	Scroll *showcase.PageScroll
	Photo  *content.GalleryItem
	// Sent is set after the contact form redirected back here.
	Sent bool
}

// render executes a page template; errors after the first byte can only be logged.
func (e *Env) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		e.Log.Error("render page", zap.String("page", name), zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// base fills the fields shared by every page.
func (e *Env) base(title string) pageBase {
	return pageBase{Lang: "en", Title: title, Site: e.Content.Get()}
}

// GET /[?photo={id}]. A known photo id renders the gallery lightbox open with
// page scrolling locked; anything else renders it closed.
func (e *Env) HandleLanding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		e.methodNotAllowed(w)
		return
	}

	page := landingPage{
		pageBase: e.base("Moto Repaint"),
		Scroll:   &showcase.PageScroll{},
		Sent:     r.URL.Query().Get("sent") == "contact",
	}
	lightbox := showcase.NewLightbox[content.GalleryItem](page.Scroll)
	if id := r.URL.Query().Get("photo"); id != "" {
		if photo, ok := page.Site.FindPhoto(id); ok {
			lightbox.Open(photo)
		}
	}
	if photo, ok := lightbox.Selected(); ok {
		page.Photo = &photo
	}
	page.Title = page.Site.Hero.Title

	e.render(w, r, "landing", page)
}

type priceListPage struct {
	pageBase
	CartID     string
	Groups     []priceGroupView
	EmptyTotal string
}

// GET /price-list starts a fresh cart for this visit.
func (e *Env) HandlePriceListPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}

	items, err := e.Store.ListItems(r.Context())
	if err != nil {
		e.Log.Error("load price list", zap.Error(err))
		http.Error(w, "price list is unavailable", http.StatusInternalServerError)
		return
	}

	e.render(w, r, "price_list", priceListPage{
		pageBase:   e.base("Price list"),
		CartID:     e.Carts.Create(),
		Groups:     e.groupsView(items, nil),
		EmptyTotal: e.Money.Format(0),
	})
}

type projectNewPage struct {
	pageBase
	Cart      cartView
	ItemsJSON string
	Sent      bool
}

// GET /projects/new?items=... shows the handed-off selection. An unreadable
// items parameter is shown as an empty selection.
func (e *Env) HandleProjectNewPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}

	cart := domain.CartFromQuery(r.URL.Query())
	itemsJSON, err := domain.EncodeHandoff(cart)
	if err != nil {
		e.Log.Warn("re-encode handoff", zap.Error(err))
		itemsJSON = "[]"
	}

	e.render(w, r, "project_new", projectNewPage{
		pageBase:  e.base("Request a project"),
		Cart:      e.cartView("", cart),
		ItemsJSON: itemsJSON,
		Sent:      r.URL.Query().Get("sent") != "",
	})
}

// GET /api/site
func (e *Env) HandleSite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}
	e.writeJSON(w, e.Content.Get())
}
