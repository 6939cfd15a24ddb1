package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/middleware"
)

// AdminHandler serves the operational HTTP surface: liveness and the
// current ledger snapshot.
type AdminHandler struct {
	ledgerAdmin portssvc.LedgerAdminSvcFacade
}

func NewAdminHandler(ledgerAdmin portssvc.LedgerAdminSvcFacade) *AdminHandler {
	return &AdminHandler{ledgerAdmin: ledgerAdmin}
}

// GetHealthz reports process liveness.
func (h *AdminHandler) GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetLedger returns the current ledger snapshot, with expired bookings
// already evicted. Ledger faults degrade to a "no data available"
// response rather than a 500 crash path.
func (h *AdminHandler) GetLedger(c *gin.Context) {
	ledger, err := h.ledgerAdmin.Snapshot(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load ledger snapshot",
			slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no ledger data available"})
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// RegisterAdminRoutes wires the admin routes onto the router.
func RegisterAdminRoutes(r *gin.Engine, h *AdminHandler) {
	r.GET("/healthz", h.GetHealthz)
	r.GET("/ledger", h.GetLedger)
}
