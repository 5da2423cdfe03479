package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Apify         Apify         `mapstructure:",squash"`
	Gemini        Gemini        `mapstructure:",squash"`
	Scan          Scan          `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	BrandScanSync BrandScanSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Apify struct {
	BaseURL         string `mapstructure:"apify_base_url"`
	ActorID         string `mapstructure:"apify_actor_id"`
	APIToken        string `mapstructure:"apify_api_token"`
	PollDelaySecs   int    `mapstructure:"apify_poll_delay_seconds"`
	PollMaxAttempts int    `mapstructure:"apify_poll_max_attempts"`
}

type Gemini struct {
	APIKey             string `mapstructure:"gemini_api_key"`
	Model              string `mapstructure:"gemini_model"`
	ImageTimeoutSecs   int    `mapstructure:"gemini_image_timeout_seconds"`
	MaxImageSizeBytes  int64  `mapstructure:"gemini_max_image_size_bytes"`
	RequestTimeoutSecs int    `mapstructure:"gemini_request_timeout_seconds"`
}

type Scan struct {
	DefaultResultsLimit int    `mapstructure:"scan_default_results_limit"`
	DefaultTopN         int    `mapstructure:"scan_default_top_n"`
	IntensityScorer     string `mapstructure:"scan_intensity_scorer"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type BrandScanSync struct {
	CronSchedule        string `mapstructure:"brand_scan_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"brand_scan_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"brand_scan_sync_enabled"`
	WithInsight         bool   `mapstructure:"brand_scan_sync_with_insight"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adintel")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("APIFY_BASE_URL", "https://api.apify.com/v2")
	viper.SetDefault("APIFY_ACTOR_ID", "apify~facebook-ads-scraper")
	viper.SetDefault("APIFY_API_TOKEN", "")
	viper.SetDefault("APIFY_POLL_DELAY_SECONDS", 3)   // 3 segundos entre consultas de status
	viper.SetDefault("APIFY_POLL_MAX_ATTEMPTS", 100)  // ~5 minutos de espera no máximo

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_IMAGE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("GEMINI_MAX_IMAGE_SIZE_BYTES", 8*1024*1024)
	viper.SetDefault("GEMINI_REQUEST_TIMEOUT_SECONDS", 120)

	viper.SetDefault("SCAN_DEFAULT_RESULTS_LIMIT", 50)
	viper.SetDefault("SCAN_DEFAULT_TOP_N", 3)
	viper.SetDefault("SCAN_INTENSITY_SCORER", "count") // count | recency

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para varredura recorrente das marcas da biblioteca
	viper.SetDefault("BRAND_SCAN_SYNC_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("BRAND_SCAN_SYNC_REQUEST_DELAY_SECONDS", 5)
	viper.SetDefault("BRAND_SCAN_SYNC_ENABLED", false)
	viper.SetDefault("BRAND_SCAN_SYNC_WITH_INSIGHT", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
