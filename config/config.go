package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Mostly simple defaults
// matching a single-machine deployment.
type Config struct {
	Port      string
	StaticDir string // root for public static files
	AudioDir  string // MP3 directory scanned into the catalog: StaticDir/javiradio
	DataDir   string // directory holding the flat data files
	WebAppDir string // directory holding the UI files

	VisitorCountFile string
	SongDataFile     string
	RatingsDataFile  string

	FFprobePath string

	// AdminPassword and SessionSecret ship with insecure defaults so the
	// app runs out of the box. Override both in any real deployment.
	AdminPassword string
	SessionSecret string

	LogPath string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	staticBase := getEnv("STATIC_DIR", "static")
	dataBase := getEnv("DATA_DIR", ".")

	return &Config{
		Port:      getEnv("PORT", "8000"),
		StaticDir: staticBase,
		AudioDir:  getEnv("AUDIO_DIR", filepath.Join(staticBase, "javiradio")),
		DataDir:   dataBase,
		WebAppDir: getEnv("WEB_APP_DIR", filepath.Join("web", "ui")),

		VisitorCountFile: filepath.Join(dataBase, "visitor_count.txt"),
		SongDataFile:     filepath.Join(dataBase, "song_data.json"),
		RatingsDataFile:  filepath.Join(dataBase, "ratings_data.json"),

		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		SessionSecret: getEnv("SESSION_SECRET", "javier_radio_secret_key_2024"),

		LogPath: getEnv("LOG_PATH", ""),
	}
}
