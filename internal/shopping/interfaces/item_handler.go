package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/application"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

// ItemServiceInterface is the slice of the list service the item handlers use.
type ItemServiceInterface interface {
	UpdateItem(ctx context.Context, userID, itemID int64, name string, quantity int, price float64, category string) error
	ToggleItem(ctx context.Context, userID, itemID int64) (int64, bool, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
	SuggestPrice(ctx context.Context, userID int64, itemName string) (*domain.PriceSuggestion, error)
}

type ItemHandler struct {
	service      ItemServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewItemHandler(
	service ItemServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ItemHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ItemHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.service.UpdateItem(r.Context(), userID, itemID, req.Name, req.Quantity, req.Price, req.Category); err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *ItemHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	id, completed, err := h.service.ToggleItem(r.Context(), userID, itemID)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        id,
		"completed": completed,
	})
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, itemID); err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *ItemHandler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemName := r.PathValue("itemName")
	if itemName == "" {
		h.respondError(w, http.StatusBadRequest, "Invalid item name")
		return
	}

	suggestion, err := h.service.SuggestPrice(r.Context(), userID, itemName)
	if err != nil {
		if errors.Is(err, application.ErrNoPriceHistory) {
			h.respondError(w, http.StatusNotFound, "No price history for item")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, suggestion)
}

func (h *ItemHandler) respondItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrItemNotFound):
		h.respondError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, application.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusForbidden, "Unauthorized")
	default:
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
