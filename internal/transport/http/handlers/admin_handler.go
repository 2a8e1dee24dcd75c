package handlers

import (
	nethttp "net/http"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/projection"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/response"
	"github.com/gin-gonic/gin"
)

type cartReport struct {
	CartID  int64  `json:"cart_id"`
	Applied int    `json:"applied"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

type replayReport struct {
	Carts    int          `json:"carts"`
	Rebuilt  int          `json:"rebuilt"`
	Lossy    []int64      `json:"lossy"`
	Failed   []cartReport `json:"failed"`
	Duration string       `json:"duration"`
}

func newCartReport(r projection.CartReport) cartReport {
	out := cartReport{CartID: r.CartID, Applied: r.Applied, Skipped: r.Skipped}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

func (h *Handler) replayAll(c *gin.Context) {
	report, err := h.replayer.ReplayAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	out := replayReport{
		Carts:    report.Carts,
		Rebuilt:  report.Rebuilt,
		Lossy:    report.Lossy,
		Failed:   make([]cartReport, 0, len(report.Failed)),
		Duration: report.Duration.String(),
	}
	for _, f := range report.Failed {
		out.Failed = append(out.Failed, newCartReport(f))
	}
	response.RespondOK(c, nethttp.StatusOK, out, nil)
}

func (h *Handler) replayCart(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.replayer.ReplayCart(c.Request.Context(), cartID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, newCartReport(report), nil)
}
