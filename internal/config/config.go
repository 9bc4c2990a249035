package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://app.db"`

	Paystack  Paystack  `envPrefix:"PAYSTACK_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	Storage   Storage
	Auth      Auth
	Comments  Comments
}

type Paystack struct {
	BaseApiURL string        `env:"BASE_API_URL" envDefault:"https://api.paystack.co"`
	SecretKey  string        `env:"SECRET_KEY"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

// Enabled reports whether enough credentials are present to talk to Braintree.
func (b Braintree) Enabled() bool {
	return b.MerchantID != "" && b.PublicKey != "" && b.PrivateKey != ""
}

type Storage struct {
	UploadDir    string `env:"UPLOAD_DIR" envDefault:"videos"`
	ProtectedDir string `env:"PROTECTED_DIR" envDefault:"protected_videos"`
	MaxUpload    string `env:"MAX_UPLOAD_SIZE" envDefault:"512M"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type Comments struct {
	AllowedDomain string `env:"COMMENT_EMAIL_DOMAIN" envDefault:"gmail.com"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
