package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/middleware"
	"github.com/mmynk/finledger/internal/service"
	"github.com/mmynk/finledger/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the workbooks over HTTP. Routes expect the authenticated
// user ID in the request context (middleware.RequireAuthHTTP).
type Handler struct {
	store storage.Store
	now   func() time.Time
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// Routes mounts GET /loans/{loanID}/schedule.xlsx and GET /obligations.xlsx.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/loans/{loanID}/schedule.xlsx", h.LoanSchedule)
	r.Get("/obligations.xlsx", h.Obligations)
}

// LoanSchedule renders the reconciled schedule of one stored loan.
func (h *Handler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loanID := chi.URLParam(r, "loanID")

	ls, err := service.LoadLoanSchedule(r.Context(), h.store, userID, loanID, h.now())
	if err != nil {
		h.fail(w, "LoanSchedule export", err)
		return
	}

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, ls.Loan.Name, ls.Schedule, ls.Reconciled); err != nil {
		h.fail(w, "LoanSchedule export", err)
		return
	}
	h.send(w, fmt.Sprintf("schedule-%s.xlsx", loanID), buf.Bytes())
}

// Obligations renders the obligation report up to the "upto" query
// parameter (YYYY-MM-DD), twelve months ahead by default.
func (h *Handler) Obligations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	now := h.now()
	upto := now.AddDate(0, 12, 0)
	if v := r.URL.Query().Get("upto"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, fmt.Sprintf("upto: %q is not a YYYY-MM-DD date", v), http.StatusBadRequest)
			return
		}
		upto = t
	}

	report, err := service.Obligations(r.Context(), h.store, userID, now, upto)
	if err != nil {
		h.fail(w, "Obligations export", err)
		return
	}

	var buf bytes.Buffer
	if err := WriteObligations(&buf, report); err != nil {
		h.fail(w, "Obligations export", err)
		return
	}
	h.send(w, "obligations.xlsx", buf.Bytes())
}

func (h *Handler) send(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write export", "file", filename, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, calculator.ErrValidation), errors.Is(err, calculator.ErrReference):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
		http.Error(w, "internal error", status)
		return
	}
	slog.Warn(op+" rejected", "status", status, "error", err)
	http.Error(w, err.Error(), status)
}
