package api

import (
	"net/http"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cat *catalog.Catalog,
) {
	routes.Register(
		mux,
		domain.QAPs.Handler(cat).Routes(),
	)
}
