package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	name    = "simtrack"
	version = "1.0.0"
)

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return version
}

func GetName() string {
	return name
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("ST_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("ST_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("ST_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/simtrack"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("ST_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("ST_WEB_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("ST_WEB_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8000
	}
	return port
}

// GetWebDomain returns the expected Host header value. Empty disables the check.
func GetWebDomain() string {
	return os.Getenv("ST_WEB_DOMAIN")
}

func GetSessionSecret() string {
	return os.Getenv("ST_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in seconds.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("ST_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 86400 * 7
	}
	return maxAge
}

func GetCORSOrigins() []string {
	origins := os.Getenv("ST_CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:8080,http://127.0.0.1:8080"
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetAdminEmail() string {
	email := os.Getenv("ST_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	return strings.ToLower(strings.TrimSpace(email))
}

func GetAdminPassword() string {
	password := os.Getenv("ST_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMeNow!"
	}
	return password
}
