// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"storefront/internal/domain/account"
)

// =====================================================
// Firestore User Repository
// =====================================================
//
// users/{uid} は Firebase Auth UID を DocID とするミラードキュメント。
// 認証情報そのものは持たない。
type UserRepositoryFS struct {
	Client *firestore.Client
}

var _ account.ProfileRepository = (*UserRepositoryFS)(nil)

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// MergeProfile は {email, createdAt: serverTime} を既存フィールドにマージする。
// 既存の他フィールド（cart サブコレクション等）には触れない。
func (r *UserRepositoryFS) MergeProfile(ctx context.Context, uid, email string) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("user_repository_fs: uid is empty")
	}

	err := setDoc(ctx, r.col().Doc(uid), map[string]any{
		"email":     email,
		"createdAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Wrapf(err, "user_repository_fs: merge profile uid=%s", uid)
	}
	return nil
}
