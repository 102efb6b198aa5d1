package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

type AppConfig struct {
	AiServiceURL            string `json:"ai_service_url"`
	AiServiceTimeoutSeconds int    `json:"ai_service_timeout_seconds"`
	LabelsFile              string `json:"labels_file"`
}

// Defaults returns the configuration used when no config file exists.
func Defaults() AppConfig {
	return AppConfig{
		AiServiceURL:            "http://localhost:8000",
		AiServiceTimeoutSeconds: 60,
		LabelsFile:              "labels.json",
	}
}

// Load reads config.json (searched upward from the working directory),
// then applies environment overrides on top. A missing file is not an
// error; env-only configuration is supported.
func Load() AppConfig {
	cfg := Defaults()

	if path, err := findConfigFile(); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[WARN] Failed to read %s: %v", path, err)
		} else if err := json.Unmarshal(data, &cfg); err != nil {
			log.Printf("[WARN] Failed to parse %s: %v", path, err)
			cfg = Defaults()
		}
	} else {
		log.Println("[WARN] Config file not found, using defaults")
	}

	if v := os.Getenv("AI_SERVICE_URL"); v != "" {
		cfg.AiServiceURL = v
	}
	if v := os.Getenv("AI_SERVICE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AiServiceTimeoutSeconds = n
		}
	}
	if v := os.Getenv("LABELS_FILE"); v != "" {
		cfg.LabelsFile = v
	}
	return cfg
}

func findConfigFile() (string, error) {
	paths := []string{"config.json", "../config.json", "../../config.json"}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			log.Printf("[INFO] Using config file: %s", p)
			return p, nil
		}
	}
	return "", os.ErrNotExist
}
