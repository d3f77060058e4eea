package v1

import (
	"net/http"

	"laza-storefront/internal/delivery/http/middleware"
	"laza-storefront/internal/usecase"
)

// Router groups the storefront handlers. Upload is nil when image uploads
// are not configured.
type Router struct {
	Sessions  *usecase.SessionUsecase
	Session   *SessionHandler
	Catalog   *CatalogHandler
	Cart      *CartHandler
	Favorites *FavoritesHandler
	AdminEdit *AdminEditHandler
	Upload    *UploadHandler
}

func (rt *Router) Register(mux *http.ServeMux) {
	withSession := func(h http.HandlerFunc) http.Handler {
		return middleware.NewSessionMiddleware(rt.Sessions, rt.Session.tokenTTL)(h)
	}

	// Sessions
	mux.HandleFunc("POST /api/v1/sessions", rt.Session.Start)
	mux.Handle("DELETE /api/v1/sessions", withSession(rt.Session.End))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/catalog", rt.Catalog.List)
	mux.HandleFunc("POST /api/v1/catalog/refresh", rt.Catalog.Refresh)

	// Cart
	mux.Handle("GET /api/v1/cart", withSession(rt.Cart.GetCart))
	mux.Handle("POST /api/v1/cart", withSession(rt.Cart.AddToCart))
	mux.Handle("DELETE /api/v1/cart/{itemId}", withSession(rt.Cart.RemoveFromCart))
	mux.Handle("POST /api/v1/cart/checkout", withSession(rt.Cart.Checkout))

	// Favorites
	mux.Handle("GET /api/v1/favorites", withSession(rt.Favorites.GetFavorites))
	mux.Handle("POST /api/v1/favorites/{itemId}/toggle", withSession(rt.Favorites.Toggle))

	// Admin edit session
	mux.Handle("GET /api/v1/admin/edit", withSession(rt.AdminEdit.GetSession))
	mux.Handle("POST /api/v1/admin/edit", withSession(rt.AdminEdit.Begin))
	mux.Handle("PATCH /api/v1/admin/edit", withSession(rt.AdminEdit.EditField))
	mux.Handle("POST /api/v1/admin/edit/submit", withSession(rt.AdminEdit.Submit))
	mux.Handle("DELETE /api/v1/admin/edit", withSession(rt.AdminEdit.Cancel))
	mux.Handle("DELETE /api/v1/admin/catalog/{itemId}", withSession(rt.AdminEdit.DeleteItem))

	// Uploads
	if rt.Upload != nil {
		mux.Handle("POST /api/v1/admin/upload", withSession(rt.Upload.UploadFile))
		mux.Handle("POST /api/v1/admin/edit/image", withSession(rt.Upload.UploadEditImage))
	}
}
