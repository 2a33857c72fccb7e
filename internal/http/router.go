package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/f2p-catalog-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil, in which
// case no admin routes are mounted.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	handler.Register(mux)
	if admin != nil {
		admin.Register(mux)
	}
	return mux
}
