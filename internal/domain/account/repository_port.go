package account

import "context"

// IdentityProvider はメール/パスワード認証のアウトバウンドポートです。
// SignUp は作成したユーザーでそのままサインインした状態の Credential を返す。
// エラーは実装のものをそのまま返す（ここでは変換しない）。
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*Credential, error)
	SignIn(ctx context.Context, email, password string) (*Credential, error)
	// SignOut は uid の refresh token を失効させる。
	SignOut(ctx context.Context, uid string) error
}

// TokenVerifier は Bearer ID トークンを検証して User を返します。
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*User, error)
}

// ProfileRepository は users/{uid} ミラードキュメントの永続化ポート。
type ProfileRepository interface {
	// MergeProfile は {email, createdAt: serverTime} を既存フィールドにマージする。
	MergeProfile(ctx context.Context, uid, email string) error
}
