package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/essalvador31/ShoppingListManager/internal/shopping/application"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/domain"
)

// ListServiceInterface is the slice of the list service the list handlers use.
type ListServiceInterface interface {
	GetOrCreateActiveList(ctx context.Context, userID int64) (*domain.ShoppingList, error)
	GetFinalizedLists(ctx context.Context, userID int64) ([]domain.FinalizedListView, error)
	RenameList(ctx context.Context, userID, listID int64, name string) (*domain.ShoppingList, error)
	FinalizeList(ctx context.Context, userID, listID int64) error
	DeleteList(ctx context.Context, userID, listID int64) error
	ListItems(ctx context.Context, userID, listID int64) (*domain.ListItemsView, error)
	AddItem(ctx context.Context, userID, listID int64, name string, quantity int, price float64, category string) (*domain.ItemView, error)
}

type ListHandler struct {
	service      ListServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewListHandler(
	service ListServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ListHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &ListHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func userIDFromRequest(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	return userID, ok
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func (h *ListHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	lists, err := h.service.GetFinalizedLists(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve saved lists")
		return
	}
	if lists == nil {
		lists = []domain.FinalizedListView{}
	}

	h.respondJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) GetActiveList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := h.service.GetOrCreateActiveList(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to resolve active list")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":   list.ID,
		"name": list.Name,
	})
}

func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "List name must not be empty")
		return
	}

	if _, err := h.service.RenameList(r.Context(), userID, listID, req.Name); err != nil {
		h.respondListError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "List name updated",
	})
}

func (h *ListHandler) FinalizeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	if err := h.service.FinalizeList(r.Context(), userID, listID); err != nil {
		h.respondListError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "List finalized and saved",
	})
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	if err := h.service.DeleteList(r.Context(), userID, listID); err != nil {
		h.respondListError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *ListHandler) GetListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid list ID")
		return
	}

	view, err := h.service.ListItems(r.Context(), userID, listID)
	if err != nil {
		h.respondListError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid list ID")
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

	item, err := h.service.AddItem(r.Context(), userID, listID, req.Name, req.Quantity, req.Price, req.Category)
	if err != nil {
		h.respondListError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, item)
}

// respondListError maps service errors onto the API contract. Wrong-state
// lists answer exactly like missing ones.
func (h *ListHandler) respondListError(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrListNotFound) || errors.Is(err, application.ErrListNotActive) {
		h.respondError(w, http.StatusNotFound, "Shopping list not found")
		return
	}
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}

type itemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (req *itemRequest) validate() (string, bool) {
	if strings.TrimSpace(req.Name) == "" {
		return "Item name must not be empty", false
	}
	if req.Quantity < 0 {
		return "Quantity must not be negative", false
	}
	if req.Price < 0 {
		return "Price must not be negative", false
	}
	return "", true
}
