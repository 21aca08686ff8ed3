// README: Single destination rate lookup handlers.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/modules/pricing"
	"freight/internal/modules/rate"
)

type RateLookup interface {
	Lookup(ctx context.Context, state, city string) (*rate.Record, error)
	Get(ctx context.Context, state, city string) (*rate.Record, error)
}

type RateHandler struct {
	rates RateLookup
}

func NewRateHandler(rates RateLookup) *RateHandler {
	return &RateHandler{rates: rates}
}

type lookupReq struct {
	State string `json:"state" binding:"required"`
	City  string `json:"city" binding:"required"`
}

// rateResp rounds computed rates and distance; base rates are the hub's own.
type rateResp struct {
	State          string  `json:"state"`
	City           string  `json:"city"`
	Pincode        string  `json:"pincode,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	BaseTyre10Rate float64 `json:"baseTyre10Rate"`
	BaseTyre12Rate float64 `json:"baseTyre12Rate"`
	BaseTyre14Rate float64 `json:"baseTyre14Rate"`
	Tyre10Rate     int64   `json:"tyre10Rate"`
	Tyre12Rate     int64   `json:"tyre12Rate"`
	Tyre14Rate     int64   `json:"tyre14Rate"`
	Distance       int64   `json:"distance"`
	NearestHub     string  `json:"nearestHub"`
	Persisted      bool    `json:"persisted"`
}

func toRateResp(r *rate.Record, persisted bool) rateResp {
	return rateResp{
		State:          r.State,
		City:           r.City,
		Pincode:        r.Pincode,
		Latitude:       r.Position.Lat,
		Longitude:      r.Position.Lon,
		BaseTyre10Rate: r.BaseRates.Tyre10,
		BaseTyre12Rate: r.BaseRates.Tyre12,
		BaseTyre14Rate: r.BaseRates.Tyre14,
		Tyre10Rate:     pricing.Round(r.Rates.Tyre10),
		Tyre12Rate:     pricing.Round(r.Rates.Tyre12),
		Tyre14Rate:     pricing.Round(r.Rates.Tyre14),
		Distance:       pricing.Round(r.DistanceKm),
		NearestHub:     r.NearestHub,
		Persisted:      persisted,
	}
}

func (h *RateHandler) Lookup(c *gin.Context) {
	var req lookupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	rec, err := h.rates.Lookup(c.Request.Context(), req.State, req.City)
	if err != nil && !(rec != nil && errors.Is(err, rate.ErrPersistence)) {
		writeServiceError(c, err)
		return
	}
	if err != nil {
		_ = c.Error(err)
	}
	writeJSON(c, http.StatusOK, toRateResp(rec, err == nil))
}

func (h *RateHandler) Get(c *gin.Context) {
	state, city := c.Query("state"), c.Query("city")
	if state == "" || city == "" {
		writeError(c, http.StatusBadRequest, "state and city query parameters are required")
		return
	}
	rec, err := h.rates.Get(c.Request.Context(), state, city)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toRateResp(rec, true))
}
