// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// ストアのバックエンド種別
const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// DefaultAdminUID は管理者として扱う Firebase Auth UID の既定値です。
const DefaultAdminUID = "k3fh6cMV94Ya1f8S4ooLFI5UIXF3"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port                     string
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Firebase Auth 用のプロジェクトID
	FirebaseProjectID string

	// Identity Toolkit (パスワード認証) 用の Web API Key。
	// 直接指定が無ければ Secret Manager のシークレット名から解決する。
	FirebaseAPIKey       string
	FirebaseAPIKeySecret string

	AdminUID     string
	StoreBackend string

	// STORE_BACKEND=memory のときだけ使う: AdminUID で作成する管理者アカウント
	MemoryAdminEmail    string
	MemoryAdminPassword string

	// 任意: カタログ画像の GCS バケット
	CatalogImageBucket string

	// 任意: ウェルカムメール
	SendGridAPIKey string
	SendGridFrom   string

	// 任意: analytics (OTLP)
	AnalyticsEnabled bool
	OTLPEndpoint     string

	CORSAllowedOrigin string
	LogLevel          string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "shreeramelectronics-55add")

	return &Config{
		Port:                     getenvDefault("PORT", "8080"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		FirebaseAPIKey:       strings.TrimSpace(os.Getenv("FIREBASE_API_KEY")),
		FirebaseAPIKeySecret: strings.TrimSpace(os.Getenv("FIREBASE_API_KEY_SECRET")),

		AdminUID:     getenvDefault("ADMIN_UID", DefaultAdminUID),
		StoreBackend: strings.ToLower(getenvDefault("STORE_BACKEND", BackendFirestore)),

		MemoryAdminEmail:    strings.TrimSpace(os.Getenv("MEMORY_ADMIN_EMAIL")),
		MemoryAdminPassword: os.Getenv("MEMORY_ADMIN_PASSWORD"),

		CatalogImageBucket: strings.TrimSpace(os.Getenv("CATALOG_IMAGE_BUCKET")),

		SendGridAPIKey: strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		SendGridFrom:   getenvDefault("SENDGRID_FROM", "no-reply@shreeramelectronics.in"),

		AnalyticsEnabled: getenvBool("ANALYTICS_ENABLED", false),
		OTLPEndpoint:     strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),

		CORSAllowedOrigin: getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
	}
}

// CredentialsFile は GCP クライアントに渡す認証ファイルを返します（空なら ADC）。
func (c *Config) CredentialsFile() string {
	if f := strings.TrimSpace(c.FirestoreCredentialsFile); f != "" {
		return f
	}
	return strings.TrimSpace(c.GCPCreds)
}

// UseMemoryStore は Firestore の代わりにインメモリ実装を使うかどうか。
func (c *Config) UseMemoryStore() bool {
	return c.StoreBackend == BackendMemory
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
