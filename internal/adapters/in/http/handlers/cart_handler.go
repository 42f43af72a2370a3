// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
)

// CartHandler は /me/cart と /me/wishlist を扱います。
// 未ログインの GET は空配列、変更系は 401 AUTH_REQUIRED。
type CartHandler struct {
	uc  *usecase.CartUsecase
	log logrus.FieldLogger
}

func NewCartHandler(uc *usecase.CartUsecase, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

type qtyRequest struct {
	Qty *int `json:"qty"`
}

func (h *CartHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/me/cart", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/me/cart/items", h.addToCart).Methods(http.MethodPost)
	r.HandleFunc("/me/cart/items/{name}", h.updateQty).Methods(http.MethodPut)
	r.HandleFunc("/me/cart/items/{name}", h.removeItem).Methods(http.MethodDelete)

	r.HandleFunc("/me/wishlist", h.getWishlist).Methods(http.MethodGet)
	r.HandleFunc("/me/wishlist/items", h.addToWishlist).Methods(http.MethodPost)
	r.HandleFunc("/me/wishlist/items/{name}/move-to-cart", h.moveToCart).Methods(http.MethodPost)
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.FetchCart(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var in cartdom.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.uc.AddToCart(r.Context(), currentUser(r), in); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) updateQty(w http.ResponseWriter, r *http.Request) {
	var req qtyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.Qty == nil {
		writeErrorMessage(w, http.StatusBadRequest, "qty is required")
		return
	}
	if err := h.uc.UpdateCartQty(r.Context(), currentUser(r), mux.Vars(r)["name"], *req.Qty); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.RemoveCartItem(r.Context(), currentUser(r), mux.Vars(r)["name"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) getWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.FetchWishlist(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	var in cartdom.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.uc.AddToWishlist(r.Context(), currentUser(r), in); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) moveToCart(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.MoveWishlistItemToCart(r.Context(), currentUser(r), mux.Vars(r)["name"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
