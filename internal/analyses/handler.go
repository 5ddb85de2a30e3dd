package analyses

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contract-backend/internal/documents"
	"contract-backend/internal/processing"
	"contract-backend/internal/shared/server/respond"
)

const maxInlineTextBytes = 1 << 20 // 1MB

// Handler wires HTTP handlers to the processing orchestrator.
type Handler struct {
	Proc    *processing.Processor
	Docs    *documents.Service
	Records *Registry
}

// NewHandler constructs a Handler.
func NewHandler(proc *processing.Processor, docs *documents.Service, records *Registry) *Handler {
	return &Handler{Proc: proc, Docs: docs, Records: records}
}

// RegisterRoutes attaches analysis routes to the router group. throttle is
// applied to the routes that call out to inference providers.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, throttle gin.HandlerFunc) {
	rg.POST("/documents/:id/analyze", throttle, h.analyzeDocument)
	rg.POST("/analyze", throttle, h.analyzeText)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
	rg.GET("/stats", h.stats)
}

// analyzeResponse flattens the processing result alongside the record IDs.
type analyzeResponse struct {
	AnalysisID string `json:"analysisId"`
	DocumentID string `json:"documentId,omitempty"`
	processing.Result
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	documentID := c.Param("id")
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		return
	}

	doc, err := h.Docs.Get(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	h.run(c, doc.ID, doc.ExtractedText, doc.DocumentType)
}

type analyzeTextRequest struct {
	Text         string `json:"text"`
	DocumentType string `json:"documentType"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}
	if len(req.Text) > maxInlineTextBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text exceeds maximum size", nil)
		return
	}

	h.run(c, "", req.Text, req.DocumentType)
}

func (h *Handler) run(c *gin.Context, documentID, text, documentType string) {
	if documentID != "" {
		c.Set("documentId", documentID)
	}

	result, err := h.Proc.Process(c.Request.Context(), text, documentType)
	if result.UsingPrimary {
		c.Set("analysisPath", "primary")
	} else {
		c.Set("analysisPath", "fallback")
	}

	rec := Record{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Result:     result,
		CreatedAt:  time.Now().UTC(),
	}
	if storeErr := h.Records.Create(c.Request.Context(), rec); storeErr != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record analysis", nil)
		return
	}

	status := http.StatusOK
	if err != nil && !result.Success {
		status = http.StatusBadGateway
	}

	respond.JSON(c, status, analyzeResponse{
		AnalysisID: rec.ID,
		DocumentID: documentID,
		Result:     result,
	})
}

func (h *Handler) get(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	rec, err := h.Records.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, analyzeResponse{
		AnalysisID: rec.ID,
		DocumentID: rec.DocumentID,
		Result:     rec.Result,
	})
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	recs, err := h.Records.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		item := gin.H{
			"analysisId":   rec.ID,
			"success":      rec.Result.Success,
			"usingPrimary": rec.Result.UsingPrimary,
			"createdAt":    rec.CreatedAt,
		}
		if rec.DocumentID != "" {
			item["documentId"] = rec.DocumentID
		}
		if rec.Result.Analysis != nil {
			item["documentType"] = rec.Result.Analysis.Summary.DocumentType
			item["confidence"] = rec.Result.Confidence
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) stats(c *gin.Context) {
	respond.JSON(c, http.StatusOK, h.Proc.Stats())
}
