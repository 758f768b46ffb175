package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/mail"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"solarquote/services"
)

// HandleQuoteSend returns a handler that emails a stored quote to the
// customer with the PDF document attached.
func HandleQuoteSend(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quote id"})
		}

		record, _, err := loadQuote(app, quoteID)
		if err != nil {
			log.Printf("quote_send: could not load quote %s: %v", quoteID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		email := record.GetString("customer_email")
		if email == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "quote has no customer email"})
		}

		data, err := buildQuoteExport(app, quoteID)
		if err != nil {
			log.Printf("quote_send: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("quote_send: failed to generate PDF: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate PDF"})
		}

		folio := record.GetString("folio")
		message := &mailer.Message{
			From: mail.Address{
				Name:    app.Settings().Meta.SenderName,
				Address: app.Settings().Meta.SenderAddress,
			},
			To:      []mail.Address{{Name: record.GetString("customer_name"), Address: email}},
			Subject: fmt.Sprintf("Your solar installation quote %s", folio),
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Attached is your solar installation quote <strong>%s</strong> for a total of <strong>%s</strong>.</p><p>It covers %d panels. Prices are valid for 15 days.</p>",
				record.GetString("customer_name"), folio, services.FormatMXN(record.GetFloat("total")), data.PanelCount,
			),
			Attachments: map[string]io.Reader{
				fmt.Sprintf("Quote_%s.pdf", sanitizeFilename(folio)): bytes.NewReader(pdfBytes),
			},
		}

		if err := app.NewMailClient().Send(message); err != nil {
			log.Printf("quote_send: mail send failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to send email"})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "sent", "to": email})
	}
}
