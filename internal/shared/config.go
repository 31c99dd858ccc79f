package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	DBPath      string
	ReceiptDir  string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	RoomNumbers []string
	RateRPS     int
	RateBurst   int
	Workers     int
	AutoOpen    bool
	CacheTTL    time.Duration

	// Receipt letterhead.
	HotelName    string
	HotelAddress string
	HotelGSTIN   string
	HotelPhone   string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		DBPath:       env("DB_PATH", "hotel_billing.db"),
		ReceiptDir:   env("RECEIPT_DIR", "receipts"),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		RoomNumbers:  splitCSV(env("ROOM_NUMBERS", "101,102,103,104,105,106")),
		RateRPS:      atoi("RATE_LIMIT_RPS", 20),
		RateBurst:    atoi("RATE_LIMIT_BURST", 40),
		Workers:      atoi("RECEIPT_WORKERS", 4),
		AutoOpen:     env("RECEIPT_AUTO_OPEN", "") == "1",
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 0)) * time.Second, // 0 = no expiry; bills are immutable
		HotelName:    env("HOTEL_NAME", "CAPITAL 409"),
		HotelAddress: env("HOTEL_ADDRESS", "Megha Road, Abhanpur, Chhattisgarh, India"),
		HotelGSTIN:   env("HOTEL_GSTIN", "22IOLPS6709M1Z6"),
		HotelPhone:   env("HOTEL_PHONE", "+91 74149 83156"),
	}
	if len(c.RoomNumbers) == 0 {
		log.Warn().Msg("ROOM_NUMBERS is empty; dashboard will have no rooms")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
