// README: Batch rate handlers for JSON sheets and XLSX uploads.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/modules/batch"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BatchRunner interface {
	Run(ctx context.Context, hubs, destinations batch.Sheet) (*batch.Result, error)
}

type BatchHandler struct {
	engine   BatchRunner
	maxBytes int64
}

// NewBatchHandler limits each uploaded file to maxBytes.
func NewBatchHandler(engine BatchRunner, maxBytes int64) *BatchHandler {
	return &BatchHandler{engine: engine, maxBytes: maxBytes}
}

type batchReq struct {
	Hubs         batch.Sheet `json:"hubs"`
	Destinations batch.Sheet `json:"destinations"`
}

func (h *BatchHandler) Run(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	res, err := h.engine.Run(c.Request.Context(), req.Hubs, req.Destinations)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// UploadXLSX reads hubsFile and destinationsFile and answers with the
// computed rates as an XLSX attachment.
func (h *BatchHandler) UploadXLSX(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxBytes+1<<20)

	hubs, status, err := h.readSheet(c, "hubsFile")
	if err != nil {
		writeError(c, status, err.Error())
		return
	}
	dests, status, err := h.readSheet(c, "destinationsFile")
	if err != nil {
		writeError(c, status, err.Error())
		return
	}

	res, err := h.engine.Run(c.Request.Context(), hubs, dests)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := batch.WriteOutput(&buf, res.Rows); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calculated_rates.xlsx"`)
	c.Header("X-Run-Id", res.RunID)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *BatchHandler) readSheet(c *gin.Context, field string) (batch.Sheet, int, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return batch.Sheet{}, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes per file", h.maxBytes)
		}
		return batch.Sheet{}, http.StatusBadRequest, fmt.Errorf("missing %s", field)
	}
	if fh.Size > h.maxBytes {
		return batch.Sheet{}, http.StatusRequestEntityTooLarge, fmt.Errorf("%s exceeds %d bytes", field, h.maxBytes)
	}
	return openSheet(fh, field)
}

func openSheet(fh *multipart.FileHeader, field string) (batch.Sheet, int, error) {
	f, err := fh.Open()
	if err != nil {
		return batch.Sheet{}, http.StatusBadRequest, fmt.Errorf("open %s: %v", field, err)
	}
	defer f.Close()
	s, err := batch.ReadSheet(f)
	if err != nil {
		return batch.Sheet{}, http.StatusBadRequest, fmt.Errorf("invalid %s: %v", field, err)
	}
	return s, http.StatusOK, nil
}
