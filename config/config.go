package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	AI      AIConfig
	Pricing PricingConfig
	Receipt ReceiptConfig
	Worker  WorkerConfig
	Observ  ObservabilityConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	SeedDemo bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured at all. The service
// runs fully in-memory without it; Redis only caches generated insights.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers    []string
	TopicSales string
}

// Enabled reports whether Kafka brokers were configured at all.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

type PricingConfig struct {
	TaxPercentage     float64
	ServicePercentage float64
	TaxEnabled        bool
	ServiceEnabled    bool
}

type ReceiptConfig struct {
	StoreName  string
	HeaderText string
	FooterText string
	QRCodeText string
	Address    string
	Instagram  string
	Website    string
}

type WorkerConfig struct {
	InsightIntervalMinutes int
	InsightTTLMinutes      int
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	aiTimeout, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "5"))
	insightInterval, _ := strconv.Atoi(getEnv("INSIGHT_INTERVAL_MINUTES", "30"))
	insightTTL, _ := strconv.Atoi(getEnv("INSIGHT_TTL_MINUTES", "15"))
	taxPct, _ := strconv.ParseFloat(getEnv("TAX_PERCENTAGE", "11"), 64)
	servicePct, _ := strconv.ParseFloat(getEnv("SERVICE_PERCENTAGE", "5"), 64)

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			Env:      getEnv("ENV", "development"),
			SeedDemo: getEnv("SEED_DEMO_DATA", "true") == "true",
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:    brokers,
			TopicSales: getEnv("KAFKA_TOPIC_SALES_EVENTS", "pos-sales-events"),
		},
		AI: AIConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			BaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:          getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			TimeoutSeconds: aiTimeout,
		},
		Pricing: PricingConfig{
			TaxPercentage:     taxPct,
			ServicePercentage: servicePct,
			TaxEnabled:        getEnv("TAX_ENABLED", "true") == "true",
			ServiceEnabled:    getEnv("SERVICE_ENABLED", "false") == "true",
		},
		Receipt: ReceiptConfig{
			StoreName:  getEnv("RECEIPT_STORE_NAME", "WARUNG PINTAR AI"),
			HeaderText: getEnv("RECEIPT_HEADER", "Terima Kasih Telah Berkunjung!"),
			FooterText: getEnv("RECEIPT_FOOTER", "Silahkan datang kembali."),
			QRCodeText: getEnv("RECEIPT_QR_TEXT", "Scan untuk feedback"),
			Address:    getEnv("RECEIPT_ADDRESS", "Jl. Jend. Sudirman No. 45, Jakarta Pusat"),
			Instagram:  getEnv("RECEIPT_INSTAGRAM", "@warungpintar.ai"),
			Website:    getEnv("RECEIPT_WEBSITE", "warung.ai"),
		},
		Worker: WorkerConfig{
			InsightIntervalMinutes: insightInterval,
			InsightTTLMinutes:      insightTTL,
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, redis=%t, kafka=%t",
		cfg.Server.Env, cfg.Server.Port, cfg.Redis.Enabled(), cfg.Kafka.Enabled())
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
