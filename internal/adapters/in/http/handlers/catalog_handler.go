// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
	catalogdom "storefront/internal/domain/catalog"
)

const maxImageUpload = 10 << 20

// CatalogHandler は /categories, /products, /images を扱います。
// 書き込み系は管理者のみ。
type CatalogHandler struct {
	uc   *usecase.CatalogUsecase
	auth *usecase.AuthUsecase
	log  logrus.FieldLogger
}

func NewCatalogHandler(uc *usecase.CatalogUsecase, auth *usecase.AuthUsecase, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, auth: auth, log: log}
}

type createdResponse struct {
	ID string `json:"id"`
}

type imageResponse struct {
	URL string `json:"url"`
}

func (h *CatalogHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.addCategory).Methods(http.MethodPost)

	r.HandleFunc("/products/latest", h.latestProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", h.productsByCategory).Methods(http.MethodGet)
	r.HandleFunc("/products", h.addProduct).Methods(http.MethodPost)

	r.HandleFunc("/images", h.uploadImage).Methods(http.MethodPost)
}

// requireAdmin: 未ログインは 401、管理者以外は 403。
func (h *CatalogHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	u := currentUser(r)
	if u == nil {
		writeError(w, h.log, usecase.ErrAuthRequired)
		return false
	}
	if h.auth == nil || !h.auth.IsAdmin(u) {
		writeError(w, h.log, usecase.ErrForbidden)
		return false
	}
	return true
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.uc.FetchCategories(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CatalogHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var in catalogdom.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := h.uc.AddCategory(r.Context(), &in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, id)
}

func (h *CatalogHandler) latestProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntDefault(r.URL.Query().Get("limit"), catalogdom.DefaultLatestProducts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ps, err := h.uc.FetchLatestProducts(r.Context(), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// productsByCategory: category は完全一致（trim しない）。
func (h *CatalogHandler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	ps, err := h.uc.FetchProductsByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var in catalogdom.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := h.uc.AddProduct(r.Context(), &in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, id)
}

// uploadImage は multipart/form-data の "file" を受け取る。
func (h *CatalogHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, err := h.uc.UploadCatalogImage(r.Context(), currentUser(r), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, imageResponse{URL: url})
}

// 必須項目が欠けた作成は何もしないので 204。
func writeCreated(w http.ResponseWriter, id string) {
	if id == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}
