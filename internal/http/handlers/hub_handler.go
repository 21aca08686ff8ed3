// README: Hub registration and listing handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freight/internal/modules/hub"
	"freight/internal/types"
)

type HubRegistry interface {
	Register(ctx context.Context, c hub.Candidate) (hub.RegisterResult, error)
	List() []hub.Hub
}

type HubHandler struct {
	hubs HubRegistry
}

func NewHubHandler(hubs HubRegistry) *HubHandler {
	return &HubHandler{hubs: hubs}
}

type registerHubReq struct {
	State      string  `json:"state" binding:"required"`
	City       string  `json:"city" binding:"required"`
	Pincode    string  `json:"pincode"`
	Tyre10Rate float64 `json:"tyre10Rate" binding:"required,gt=0"`
	Tyre12Rate float64 `json:"tyre12Rate" binding:"required,gt=0"`
	Tyre14Rate float64 `json:"tyre14Rate" binding:"required,gt=0"`
}

type hubResp struct {
	ID         types.ID  `json:"id"`
	State      string    `json:"state"`
	City       string    `json:"city"`
	Pincode    string    `json:"pincode,omitempty"`
	Tyre10Rate float64   `json:"tyre10Rate"`
	Tyre12Rate float64   `json:"tyre12Rate"`
	Tyre14Rate float64   `json:"tyre14Rate"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toHubResp(h hub.Hub) hubResp {
	return hubResp{
		ID:         h.ID,
		State:      h.State,
		City:       h.City,
		Pincode:    h.Pincode,
		Tyre10Rate: h.Rates.Tyre10,
		Tyre12Rate: h.Rates.Tyre12,
		Tyre14Rate: h.Rates.Tyre14,
		Latitude:   h.Position.Lat,
		Longitude:  h.Position.Lon,
		CreatedAt:  h.CreatedAt,
	}
}

func (h *HubHandler) Register(c *gin.Context) {
	var req registerHubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	res, err := h.hubs.Register(c.Request.Context(), hub.Candidate{
		State:   req.State,
		City:    req.City,
		Pincode: req.Pincode,
		Rates:   types.TyreRates{Tyre10: req.Tyre10Rate, Tyre12: req.Tyre12Rate, Tyre14: req.Tyre14Rate},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !res.Created {
		writeJSON(c, http.StatusOK, gin.H{"message": "Hub already exists for this location"})
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"message": "Hub added successfully", "hub": toHubResp(res.Hub)})
}

func (h *HubHandler) List(c *gin.Context) {
	hubs := h.hubs.List()
	out := make([]hubResp, 0, len(hubs))
	for _, hb := range hubs {
		out = append(out, toHubResp(hb))
	}
	writeJSON(c, http.StatusOK, out)
}
