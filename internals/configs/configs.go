package configs

import (
	"log"
	"os"
	"strconv"
	"time"
)

var (
	JWTSecret string

	// Campus-wide timezone convention. All attendance dates are calendar
	// days in this zone, never raw timestamps.
	TimeLocation *time.Location
)

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// AttendanceEditWindow is how long after creation a ledger entry stays
// editable. Policy default is 7 days.
func AttendanceEditWindow() time.Duration {
	days := 7
	if v := os.Getenv("ATTENDANCE_EDIT_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

func LoadEnv() {
	if err := loadDotEnv(); err != nil {
		log.Println("no .env file found, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("JWT_SECRET is not set")
	}

	tz := GetEnvDefault("APP_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("invalid APP_TIMEZONE %q, falling back to UTC", tz)
		loc = time.UTC
	}
	TimeLocation = loc
}
