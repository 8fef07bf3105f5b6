package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                   string        // Host IP for the server
	RESTPort                 int           // Port for the REST API
	GinMode                  string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret                string        // Secret key for session token signing
	JWTIssuer                string        // Issuer claim for session tokens
	SessionTokenTTL          time.Duration // Lifetime of session tokens
	RedisAddr                string        // Redis address for the run lock; empty keeps locks in memory
	RedisPassword            string        // Password for Redis
	RedisDB                  int           // Redis database index
	RunLockTTL               time.Duration // Expiry of a distributed run lock
	DBHost                   string        // Hostname or IP address for the report database; empty keeps reports in memory
	DBPort                   int           // Port number for the database
	DBUser                   string        // Username for the database
	DBPassword               string        // Password for the database
	DBName                   string        // Name of the database
	MazeSize                 int           // Default maze size for new sessions
	MazeAlgorithm            string        // Default search algorithm (bfs, dfs, brute-force)
	StepDelayMs              int           // Pause before each visited cell is shown
	BacktrackDelayMs         int           // Pause after an unvisited cell, in milliseconds
	BacktrackPauseMultiplier int           // Step delay multiplier for the first visit after backtracking
}

// Load reads the configuration from the environment.
// It loads environment variables from a .env file first, if one exists.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:                   getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:                 getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:                  getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:                getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:                getEnvWithDefault("JWT_ISSUER", "vinom-wayout"),
		SessionTokenTTL:          getEnvAsDurationWithDefault("SESSION_TOKEN_TTL", time.Hour),
		RedisAddr:                getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:            getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:                  getEnvAsIntWithDefault("REDIS_DB", 0),
		RunLockTTL:               getEnvAsDurationWithDefault("RUN_LOCK_TTL", 10*time.Minute),
		DBHost:                   getEnvWithDefault("DB_HOST", ""),
		DBPort:                   getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:                   getEnvWithDefault("DB_USER", ""),
		DBPassword:               getEnvWithDefault("DB_PASS", ""),
		DBName:                   getEnvWithDefault("DB_NAME", "wayout"),
		MazeSize:                 getEnvAsIntWithDefault("MAZE_SIZE", 10),
		MazeAlgorithm:            getEnvWithDefault("MAZE_ALGORITHM", "bfs"),
		StepDelayMs:              getEnvAsIntWithDefault("STEP_DELAY_MS", 100),
		BacktrackDelayMs:         getEnvAsIntWithDefault("BACKTRACK_DELAY_MS", 400),
		BacktrackPauseMultiplier: getEnvAsIntWithDefault("BACKTRACK_PAUSE_MULTIPLIER", 5),
	}
}

// MongoURI returns the connection string of the report database.
func (c Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// Addr returns the listen address of the REST API.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue
// when it is unset or cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}

// getEnvAsDurationWithDefault retrieves a duration such as "30s" or "1h" from the environment.
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be a duration, using %s: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}
