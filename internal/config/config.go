// Package config stores the Canvas connection credentials in the OS
// keychain, with environment-variable overrides for CI and scripting.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/99designs/keyring"
)

const (
	serviceName = "canvas-cli"
	accountKey  = "default"

	envBaseURL  = "CANVAS_BASE_URL"
	envToken    = "CANVAS_API_TOKEN"
	envCourseID = "CANVAS_COURSE_ID"

	envKeyringBackend  = "CANVAS_KEYRING_BACKEND"
	envKeyringPassword = "CANVAS_KEYRING_PASSWORD"
	envCredentialsDir  = "CANVAS_CREDENTIALS_DIR"

	backendAuto   = "auto"
	backendFile   = "file"
	backendSystem = "system"
)

// openKeyring can be replaced in tests to use an in-memory keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

var userConfigDir = os.UserConfigDir

var stdinHasTTY = func() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// SetOpenKeyring replaces the keyring opener for testing and returns a
// cleanup function restoring the original.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// Account holds the Canvas connection details.
type Account struct {
	BaseURL  string `json:"base_url"`
	Token    string `json:"token"`
	CourseID int    `json:"course_id"`
}

// ErrNotConfigured is returned when no account is stored; callers branch
// on it rather than parsing keyring-specific errors.
var ErrNotConfigured = errors.New("canvas not configured - run 'canvas auth login' first")

func keyringConfig() keyring.Config {
	cfg := keyring.Config{ServiceName: serviceName}

	backend := backendMode()
	if backend == backendSystem {
		return cfg
	}

	// Configure the encrypted-file backend even in auto mode so keyring.Open
	// can fall through to it when no native store is available.
	cfg.FileDir = fileDir()
	cfg.FilePasswordFunc = filePassword

	if forceFileBackend(runtime.GOOS, backend, os.Getenv("DBUS_SESSION_BUS_ADDRESS")) {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

func backendMode() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKeyringBackend))) {
	case backendFile:
		return backendFile
	case backendSystem, "os", "native":
		return backendSystem
	default:
		return backendAuto
	}
}

// forceFileBackend routes headless Linux (no session bus, so no Secret
// Service) straight to encrypted file storage.
func forceFileBackend(goos, backend, dbusAddr string) bool {
	if backend == backendFile {
		return true
	}
	if backend != backendAuto {
		return false
	}
	return goos == "linux" && strings.TrimSpace(dbusAddr) == ""
}

func fileDir() string {
	base := strings.TrimSpace(os.Getenv(envCredentialsDir))
	if base == "" {
		if dir, err := userConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = filepath.Join(dir, serviceName)
		}
	}
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config", serviceName)
		}
	}
	if base == "" {
		base = filepath.Join(os.TempDir(), serviceName)
	}
	return filepath.Join(base, "keyring")
}

func filePassword(prompt string) (string, error) {
	if password := os.Getenv(envKeyringPassword); strings.TrimSpace(password) != "" {
		return password, nil
	}
	if !stdinHasTTY() {
		return "", fmt.Errorf("set %s when using the file keyring in non-interactive environments", envKeyringPassword)
	}
	return keyring.TerminalPrompt(prompt)
}

// SaveAccount stores the connection details in the OS keychain.
func SaveAccount(account Account) error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: accountKey, Data: data}); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// LoadAccount retrieves the connection details. The CANVAS_BASE_URL /
// CANVAS_API_TOKEN / CANVAS_COURSE_ID environment variables, when all set,
// take precedence over the keychain.
func LoadAccount() (Account, error) {
	if baseURL := strings.TrimSpace(os.Getenv(envBaseURL)); baseURL != "" {
		token := strings.TrimSpace(os.Getenv(envToken))
		courseIDStr := strings.TrimSpace(os.Getenv(envCourseID))
		if token == "" || courseIDStr == "" {
			return Account{}, fmt.Errorf("environment variables %s, %s, and %s must all be set", envBaseURL, envToken, envCourseID)
		}
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return Account{}, fmt.Errorf("%s must be a positive integer", envCourseID)
		}
		return Account{
			BaseURL:  strings.TrimSuffix(baseURL, "/"),
			Token:    token,
			CourseID: courseID,
		}, nil
	}

	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return Account{}, fmt.Errorf("failed to open keyring: %w", err)
	}
	item, err := ring.Get(accountKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Account{}, ErrNotConfigured
		}
		return Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	var account Account
	if err := json.Unmarshal(item.Data, &account); err != nil {
		return Account{}, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes the stored connection details. Deleting an absent
// account is not an error.
func DeleteAccount() error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	if err := ring.Remove(accountKey); err != nil {
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("failed to remove account: %w", err)
		}
	}
	return nil
}

// HasAccount reports whether connection details are available.
func HasAccount() bool {
	_, err := LoadAccount()
	return err == nil
}
