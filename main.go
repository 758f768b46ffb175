package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/collections"
	"solarquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed the default catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateQuoteFolios(app); err != nil {
			log.Printf("Warning: folio migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogMiddleware())

		// ── Quotes ───────────────────────────────────────────────
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))

		// Exports and send (before /api/quotes/{id} so they match first)
		se.Router.GET("/api/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/api/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.POST("/api/quotes/{id}/send", handlers.HandleQuoteSend(app))

		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/catalog/panel", handlers.HandlePanelCurrent(app))
		se.Router.POST("/api/catalog/panels", handlers.HandlePanelCreate(app))

		se.Router.GET("/api/catalog/inverters", handlers.HandleInverterList(app))
		se.Router.POST("/api/catalog/inverters", handlers.HandleInverterCreate(app))
		se.Router.POST("/api/catalog/inverters/import", handlers.HandleInverterImport(app))

		se.Router.GET("/api/catalog/frame", handlers.HandleFrameCurrent(app))
		se.Router.POST("/api/catalog/frames", handlers.HandleFrameCreate(app))

		se.Router.GET("/api/catalog/exchange-rate", handlers.HandleExchangeRateCurrent(app))
		se.Router.POST("/api/catalog/exchange-rates", handlers.HandleExchangeRateCreate(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
