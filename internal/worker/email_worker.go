package worker

// email_worker.go
// Sends quote PDFs to client emails via SMTP. Failures are logged for
// manual remediation; there is no retry queue in a single-process deploy.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mirandajandir7-prog/mitaller/internal/infra"
)

// EmailTaskPayload is the task envelope consumed by EmailWorker.
type EmailTaskPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes email tasks from the dispatcher queue.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email with the quote PDF as attachment.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailTaskPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendQuote(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: cotizacion sent successfully")
}
