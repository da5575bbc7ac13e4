// Package handler provides the HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/feature/watchlist/domain/entity"
	"crypto_dashboard/internal/feature/watchlist/transport/http/dto"
)

// SymbolUsecase is the watchlist usecase surface the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler handles HTTP requests for the watchlist.
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the active watchlist as code/name pairs. A usecase error
// yields 500.
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}
