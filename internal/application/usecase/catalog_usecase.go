// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain/account"
	catalogdom "storefront/internal/domain/catalog"
)

// CatalogDeps は CatalogUsecase の依存一式。Images / Tracker / Logger は任意。
type CatalogDeps struct {
	Repo    catalogdom.Repository
	Images  ImageStore
	Admin   account.AdminPolicy
	Tracker EventTracker
	Logger  logrus.FieldLogger
}

// CatalogUsecase は categories / products の読み書きを扱います。
type CatalogUsecase struct {
	repo    catalogdom.Repository
	images  ImageStore
	admin   account.AdminPolicy
	tracker EventTracker
	log     logrus.FieldLogger
}

func NewCatalogUsecase(d CatalogDeps) *CatalogUsecase {
	return &CatalogUsecase{
		repo:    d.Repo,
		images:  d.Images,
		admin:   d.Admin,
		tracker: d.Tracker,
		log:     loggerOrDiscard(d.Logger).WithField("component", "catalog_usecase"),
	}
}

// AddCategory: name が無ければ何もしない（エラーも返さない）。
// 作成した docId を返す（no-op のときは空文字）。
func (uc *CatalogUsecase) AddCategory(ctx context.Context, in *catalogdom.CategoryInput) (string, error) {
	c, ok := catalogdom.NewCategory(in)
	if !ok {
		uc.log.Debug("[catalog] AddCategory skipped: name missing")
		return "", nil
	}
	return uc.repo.CreateCategory(ctx, c)
}

// FetchCategories は name 昇順。
func (uc *CatalogUsecase) FetchCategories(ctx context.Context) ([]catalogdom.Category, error) {
	cs, err := uc.repo.ListCategoriesByName(ctx)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = []catalogdom.Category{}
	}
	return cs, nil
}

// AddProduct: name / category が無ければ何もしない。
func (uc *CatalogUsecase) AddProduct(ctx context.Context, in *catalogdom.ProductInput) (string, error) {
	p, ok := catalogdom.NewProduct(in)
	if !ok {
		uc.log.Debug("[catalog] AddProduct skipped: name or category missing")
		return "", nil
	}
	return uc.repo.CreateProduct(ctx, p)
}

// FetchLatestProducts は createdAt 降順で maxItems 件（<=0 は既定の 6 件）。
//
// 並び替えクエリが使えない場合だけ、全件取得 → 末尾 maxItems 件 → 逆順 で代替する。
// この代替は「最新 N 件」を保証しない近似。その他のエラーはそのまま返す。
func (uc *CatalogUsecase) FetchLatestProducts(ctx context.Context, maxItems int) ([]catalogdom.Product, error) {
	if maxItems <= 0 {
		maxItems = catalogdom.DefaultLatestProducts
	}

	ps, err := uc.repo.ListLatestProducts(ctx, maxItems)
	if err == nil {
		if ps == nil {
			ps = []catalogdom.Product{}
		}
		return ps, nil
	}
	if !errors.Is(err, catalogdom.ErrLatestOrderingUnavailable) {
		return nil, err
	}

	uc.log.WithError(err).Info("[catalog] latest ordering unavailable; using fallback")

	all, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalogdom.LatestFallback(all, maxItems), nil
}

// FetchProductsByCategory は category の完全一致（大文字小文字・空白も区別）。
func (uc *CatalogUsecase) FetchProductsByCategory(ctx context.Context, categoryName string) ([]catalogdom.Product, error) {
	ps, err := uc.repo.ListProductsByCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []catalogdom.Product{}
	}
	return ps, nil
}

// UploadCatalogImage は管理者のみ。保存した画像の公開 URL を返す。
func (uc *CatalogUsecase) UploadCatalogImage(
	ctx context.Context,
	user *account.User,
	fileName string,
	contentType string,
	r io.Reader,
) (string, error) {
	if !user.Authenticated() {
		return "", ErrAuthRequired
	}
	if !uc.admin.IsAdmin(user) {
		return "", ErrForbidden
	}
	if uc.images == nil {
		return "", ErrImageStoreNotConfigured
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") || r == nil {
		return "", ErrInvalidImage
	}

	objectName := "catalog/" + uuid.NewString() + imageExt(fileName, ct)
	url, err := uc.images.Put(ctx, objectName, ct, r)
	if err != nil {
		return "", err
	}

	uc.log.WithFields(logrus.Fields{"object": objectName, "uid": user.UID}).Info("[catalog] image uploaded")
	return url, nil
}

func imageExt(fileName, contentType string) string {
	if ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName))); ext != "" && !strings.ContainsAny(ext, `/\`) {
		return ext
	}
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
