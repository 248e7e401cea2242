package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Object storage
	EvidenceBucket  string `envconfig:"EVIDENCE_BUCKET" default:"recyloop-evidence"`
	PublicBucket    string `envconfig:"PUBLIC_BUCKET" default:"recyloop-public"`
	UploadURLTTLSec uint   `envconfig:"UPLOAD_URL_TTL_SEC" default:"900"`
	AWSAccessKey    string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey    string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion       string `envconfig:"AWS_REGION"`

	// Aggregate cache
	RedisAddr            string `envconfig:"REDIS_ADDR"`
	RedisPassword        string `envconfig:"REDIS_PASSWORD"`
	AggregateCacheTTLSec uint   `envconfig:"AGGREGATE_CACHE_TTL_SEC" default:"60"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
