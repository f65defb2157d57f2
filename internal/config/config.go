package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// GoogleCredentials represents the structure of Google OAuth credentials JSON file.
type GoogleCredentials struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"web"`
}

// LoadGoogleCredentials loads Google OAuth credentials from a JSON file.
func LoadGoogleCredentials(path string) (clientID, clientSecret string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds GoogleCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", "", fmt.Errorf("failed to parse credentials file: %w", err)
	}

	// Try "installed" first (for desktop apps), then "web"
	if creds.Installed.ClientID != "" {
		return creds.Installed.ClientID, creds.Installed.ClientSecret, nil
	}
	if creds.Web.ClientID != "" {
		return creds.Web.ClientID, creds.Web.ClientSecret, nil
	}

	return "", "", fmt.Errorf("no client_id found in credentials file (expected 'installed' or 'web' section)")
}

// Config holds the configuration for the schedule sync tool.
type Config struct {
	SpreadsheetID         string `json:"spreadsheet_id,omitempty"`
	SheetName             string `json:"sheet_name,omitempty"`
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"`
	TokenPath             string `json:"token_path,omitempty"`

	// Pause between remote calendar calls, in milliseconds.
	DeleteWaitMillis int `json:"delete_wait_millis,omitempty"`
	CreateWaitMillis int `json:"create_wait_millis,omitempty"`
}

// Flags carries the command-line overrides for LoadConfig. Zero values
// mean "not set".
type Flags struct {
	SpreadsheetID         string
	SheetName             string
	GoogleCredentialsPath string
	TokenPath             string
}

// LoadConfigFromFile loads configuration from a JSON file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadConfig loads configuration with the following precedence (highest to lowest):
// 1. Command-line flags
// 2. Environment variables
// 3. Config file
// 4. Defaults
// Returns an error if any required value is missing.
func LoadConfig(configFile string, flags Flags) (*Config, error) {
	var config Config

	// Step 1: Load from config file if provided
	if configFile != "" {
		fileConfig, err := LoadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		config = *fileConfig
	}

	// Step 2: Override with environment variables
	if spreadsheetID := os.Getenv("SPREADSHEET_ID"); spreadsheetID != "" {
		config.SpreadsheetID = spreadsheetID
	}
	if sheetName := os.Getenv("SHEET_NAME"); sheetName != "" {
		config.SheetName = sheetName
	}
	if googleCredentialsPath := os.Getenv("GOOGLE_CREDENTIALS_PATH"); googleCredentialsPath != "" {
		config.GoogleCredentialsPath = googleCredentialsPath
	}
	if tokenPath := os.Getenv("TOKEN_PATH"); tokenPath != "" {
		config.TokenPath = tokenPath
	}
	if deleteWait := os.Getenv("DELETE_WAIT_MILLIS"); deleteWait != "" {
		var err error
		if config.DeleteWaitMillis, err = strconv.Atoi(deleteWait); err != nil {
			return nil, fmt.Errorf("invalid DELETE_WAIT_MILLIS value: %w", err)
		}
	}
	if createWait := os.Getenv("CREATE_WAIT_MILLIS"); createWait != "" {
		var err error
		if config.CreateWaitMillis, err = strconv.Atoi(createWait); err != nil {
			return nil, fmt.Errorf("invalid CREATE_WAIT_MILLIS value: %w", err)
		}
	}

	// Step 3: Override with command-line flags (highest priority)
	if flags.SpreadsheetID != "" {
		config.SpreadsheetID = flags.SpreadsheetID
	}
	if flags.SheetName != "" {
		config.SheetName = flags.SheetName
	}
	if flags.GoogleCredentialsPath != "" {
		config.GoogleCredentialsPath = flags.GoogleCredentialsPath
	}
	if flags.TokenPath != "" {
		config.TokenPath = flags.TokenPath
	}

	// Step 4: Apply defaults and validate required fields
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet_id must be provided via --spreadsheet-id flag, SPREADSHEET_ID environment variable, or config file")
	}

	if config.GoogleCredentialsPath == "" {
		return nil, fmt.Errorf("google_credentials_path must be provided via --google-credentials-path flag, GOOGLE_CREDENTIALS_PATH environment variable, or config file")
	}

	if config.TokenPath == "" {
		return nil, fmt.Errorf("token_path must be provided via --token-path flag, TOKEN_PATH environment variable, or config file")
	}

	if config.SheetName == "" {
		config.SheetName = "行事予定"
	}

	if config.DeleteWaitMillis == 0 {
		config.DeleteWaitMillis = 100
	}
	if config.CreateWaitMillis == 0 {
		config.CreateWaitMillis = 200
	}

	return &config, nil
}
