package config

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration.
// Settings live in a single key/value table, one row per dotted setting name.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider, creating the
// settings table if the database is new.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database.
// Missing settings keep their zero value.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	var err error
	if config.Server.ListenAddr, err = s.getString("server.listen-addr"); err != nil {
		return nil, err
	}
	if config.Server.Port, err = s.getInt("server.port"); err != nil {
		return nil, err
	}
	if config.Server.TLSCertPath, err = s.getString("server.tls-cert"); err != nil {
		return nil, err
	}
	if config.Server.TLSKeyPath, err = s.getString("server.tls-key"); err != nil {
		return nil, err
	}
	if config.Defaults.UnitSystem, err = s.getString("defaults.unit-system"); err != nil {
		return nil, err
	}
	if config.Defaults.Pressure, err = s.getFloat("defaults.pressure"); err != nil {
		return nil, err
	}
	if config.Defaults.Altitude, err = s.getFloat("defaults.altitude"); err != nil {
		return nil, err
	}
	if config.Logging.Debug, err = s.getBool("logging.debug"); err != nil {
		return nil, err
	}
	if config.Logging.LogFile, err = s.getString("logging.log-file"); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetServer returns the server configuration
func (s *SQLiteProvider) GetServer() (*ServerData, error) {
	config, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Server, nil
}

// GetDefaults returns the calculation defaults
func (s *SQLiteProvider) GetDefaults() (*DefaultsData, error) {
	config, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Defaults, nil
}

// SetSetting writes one setting, inserting or replacing its row.
func (s *SQLiteProvider) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}

// IsReadOnly returns false; SQLite-backed configuration is writable
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

func (s *SQLiteProvider) getString(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteProvider) getInt(key string) (int, error) {
	raw, err := s.getString(key)
	if err != nil || raw == "" {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %q is not an integer: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteProvider) getFloat(key string) (float64, error) {
	raw, err := s.getString(key)
	if err != nil || raw == "" {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %q is not a number: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteProvider) getBool(key string) (bool, error) {
	raw, err := s.getString(key)
	if err != nil || raw == "" {
		return false, err
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("setting %q is not a boolean: %w", key, err)
	}
	return value, nil
}
