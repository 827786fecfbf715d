package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/contacts-api/internal/export"
	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// Export handles GET /contacts/export
//
// Streams a zip archive with one <id>.vcf entry per contact straight into
// the response body. The archive never touches the disk.
//
// ERROR HANDLING MID-STREAM:
// ──────────────────────────
// Until the first archive byte is written the response is still ours to
// change, so a failure becomes a normal 500 JSON body. Once bytes have gone
// out the status and content type are committed; the only honest signal
// left is to abort the connection, which net/http does when a handler
// panics with http.ErrAbortHandler.
// ─────────────────────────────────────────────────────────────────────────────
func Export(storage storage.Storage, workBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("exporting contacts")

		dir, cleanup, err := export.WorkDir(workBase)
		if err != nil {
			slog.Error("failed to create export work dir", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError("failed to export contacts"))
			return
		}
		// Deferred calls also run while a panic unwinds, so the directory
		// is removed on the abort path too.
		defer func() {
			if err := cleanup(); err != nil {
				slog.Warn("failed to remove export work dir",
					slog.String("dir", dir), slog.String("error", err.Error()))
			}
		}()

		contacts, err := storage.List()
		if err != nil {
			writeStoreError(w, err, "failed to export contacts")
			return
		}

		sw := &startedWriter{ResponseWriter: w}
		sw.Header().Set("Content-Type", "application/zip")
		sw.Header().Set("Content-Disposition", "attachment; filename=contacts.zip")

		rc := http.NewResponseController(sw)
		archive := export.NewArchive(sw, func() error {
			if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return err
			}
			return nil
		})

		if err := export.Write(archive, contacts); err != nil {
			if !sw.started {
				slog.Error("failed to export contacts", slog.String("error", err.Error()))
				w.Header().Del("Content-Disposition")
				response.WriteJSON(w, http.StatusInternalServerError,
					response.GeneralError("failed to export contacts"))
				return
			}
			slog.Error("export aborted mid-stream", slog.String("error", err.Error()))
			panic(http.ErrAbortHandler)
		}

		slog.Info("contacts exported", slog.Int("count", len(contacts)))
	}
}

// startedWriter records whether the response has been committed.
type startedWriter struct {
	http.ResponseWriter
	started bool
}

func (w *startedWriter) WriteHeader(status int) {
	w.started = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *startedWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *startedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
