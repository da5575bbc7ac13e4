// Package handler provides the HTTP handlers for the news feature.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/feature/news/domain/entity"
	"crypto_dashboard/internal/feature/news/transport/http/dto"
)

// NewsUsecase is the news surface the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type NewsUsecase interface {
	GetNews(ctx context.Context, symbol string, limit int, forceUpdate bool) []entity.NewsItem
	OverallSentiment(items []entity.NewsItem) string
}

// NewsHandler handles HTTP requests for scored news.
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// GetNewsHandler returns recent scored news for a symbol with the batch
// aggregate label. An empty batch is a valid response, not an error: a quiet
// symbol and a degraded backend look the same to the client.
//
// Endpoint:
// GET /news/:symbol?limit=10&force=false
func (h *NewsHandler) GetNewsHandler(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	force := c.Query("force") == "true"

	items := h.uc.GetNews(c.Request.Context(), symbol, limit, force)

	out := make([]dto.NewsItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewsItemResponse{
			Title:       it.Title,
			Summary:     it.Summary,
			URL:         it.URL,
			Source:      it.Source,
			PublishedAt: it.PublishedAt.UTC().Format(time.RFC3339),
			Sentiment:   it.Sentiment,
			Label:       it.Label,
		})
	}

	c.JSON(http.StatusOK, dto.NewsResponse{
		Symbol:           symbol,
		OverallSentiment: h.uc.OverallSentiment(items),
		Count:            len(items),
		Items:            out,
	})
}
