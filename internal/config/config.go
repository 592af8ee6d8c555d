// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/rules"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; business-hour
// settings fall back to the restaurant's published schedule so a bare
// environment still boots with sensible rules.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	// JWTSecret, when set, enables the staff bearer-token guard on
	// mutating endpoints.  Empty leaves the API open.
	JWTSecret string

	OpenMinute  int          // first reservation slot, minutes since midnight
	CloseMinute int          // last reservation slot, minutes since midnight
	ClosedDay   time.Weekday // weekday with no reservations at all
}

// Hours bundles the business-hour settings for the rule engine.
func (c Config) Hours() rules.Hours {
	return rules.Hours{Open: c.OpenMinute, Close: c.CloseMinute, ClosedDay: c.ClosedDay}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("APP_PORT", "8080"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"), // empty allowed
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		OpenMinute:  atoiDefault(getenv("RESERVATION_OPEN_MIN", ""), rules.DefaultHours.Open),
		CloseMinute: atoiDefault(getenv("RESERVATION_CLOSE_MIN", ""), rules.DefaultHours.Close),
		ClosedDay:   parseWeekday(getenv("RESERVATION_CLOSED_DAY", ""), rules.DefaultHours.ClosedDay),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseWeekday accepts an English weekday name, case-insensitive.
func parseWeekday(s string, def time.Weekday) time.Weekday {
	if s == "" {
		return def
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d
		}
	}
	log.Printf("config: unknown weekday %q, keeping %s", s, def)
	return def
}
