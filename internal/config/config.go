// Package config loads the server configuration from YAML and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSecretKey is used when no secret is configured. It is public, so
// flash cookies signed with it can be forged.
const DefaultSecretKey = "supersecretkey_change_this_later"

// Document store drivers.
const (
	DocstoreSQLite    = "sqlite"
	DocstoreMongo     = "mongo"
	DocstoreDatastore = "datastore"
)

// Blob store drivers.
const (
	BlobstoreLocal = "local"
	BlobstoreS3    = "s3"
	BlobstoreGCS   = "gcs"
)

// Config holds the server configuration.
type Config struct {
	Server             ServerConfig    `yaml:"server"`
	SecretKey          string          `yaml:"secret_key"`
	ServiceAccountFile string          `yaml:"service_account_file"`
	Docstore           DocstoreConfig  `yaml:"docstore"`
	Blobstore          BlobstoreConfig `yaml:"blobstore"`
	LogFile            string          `yaml:"log_file"`

	// serviceAccountJSON is the inline credential from SERVICE_ACCOUNT_JSON.
	serviceAccountJSON string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           int   `yaml:"port"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// DocstoreConfig selects and configures the document store.
type DocstoreConfig struct {
	Driver        string `yaml:"driver"` // sqlite, mongo, datastore
	SQLitePath    string `yaml:"sqlite_path"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	ProjectID     string `yaml:"project_id"`
}

// BlobstoreConfig selects and configures the blob store.
type BlobstoreConfig struct {
	Driver   string `yaml:"driver"` // local, s3, gcs
	Bucket   string `yaml:"bucket"`
	LocalDir string `yaml:"local_dir"`
	BaseURL  string `yaml:"base_url"`
	Region   string `yaml:"region"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           5000,
			MaxUploadBytes: 16 << 20,
		},
		SecretKey:          DefaultSecretKey,
		ServiceAccountFile: "serviceAccount.json",
		Docstore: DocstoreConfig{
			Driver:        DocstoreSQLite,
			SQLitePath:    "lostfound.sqlite3",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "lostfound",
		},
		Blobstore: BlobstoreConfig{
			Driver:   BlobstoreLocal,
			Bucket:   "lost-found-55192.firebasestorage.app",
			LocalDir: "uploads",
			BaseURL:  "/uploads",
			Region:   "us-east-1",
		},
	}
}

// Load reads the configuration from path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("SERVICE_ACCOUNT_FILE"); v != "" {
		c.ServiceAccountFile = v
	}
	if v := os.Getenv("SERVICE_ACCOUNT_JSON"); v != "" {
		c.serviceAccountJSON = v
	}
	if v := os.Getenv("DOCSTORE_DRIVER"); v != "" {
		c.Docstore.Driver = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Docstore.MongoURI = v
	}
	if v := os.Getenv("BLOBSTORE_DRIVER"); v != "" {
		c.Blobstore.Driver = v
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max_upload_bytes: %d", c.Server.MaxUploadBytes)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret_key must not be empty")
	}

	switch c.Docstore.Driver {
	case DocstoreSQLite:
		if c.Docstore.SQLitePath == "" {
			return fmt.Errorf("docstore.sqlite_path is required for the sqlite driver")
		}
	case DocstoreMongo:
		if c.Docstore.MongoURI == "" || c.Docstore.MongoDatabase == "" {
			return fmt.Errorf("docstore.mongo_uri and docstore.mongo_database are required for the mongo driver")
		}
	case DocstoreDatastore:
	default:
		return fmt.Errorf("invalid docstore driver: %s (valid: sqlite, mongo, datastore)", c.Docstore.Driver)
	}

	switch c.Blobstore.Driver {
	case BlobstoreLocal:
		if c.Blobstore.LocalDir == "" {
			return fmt.Errorf("blobstore.local_dir is required for the local driver")
		}
	case BlobstoreS3, BlobstoreGCS:
		if c.Blobstore.Bucket == "" {
			return fmt.Errorf("blobstore.bucket is required for the %s driver", c.Blobstore.Driver)
		}
	default:
		return fmt.Errorf("invalid blobstore driver: %s (valid: local, s3, gcs)", c.Blobstore.Driver)
	}
	return nil
}

// UsingDefaultSecret reports whether the built-in secret key is in use.
func (c *Config) UsingDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Server.Port)
}

// Credentials returns the service-account JSON. SERVICE_ACCOUNT_JSON wins
// over the credential file.
func (c *Config) Credentials() ([]byte, error) {
	if c.serviceAccountJSON != "" {
		return []byte(c.serviceAccountJSON), nil
	}
	if c.ServiceAccountFile == "" {
		return nil, fmt.Errorf("no service account configured")
	}
	data, err := os.ReadFile(c.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("reading service account: %w", err)
	}
	return data, nil
}

// ProjectID returns the configured datastore project, falling back to the
// project named in the service-account credential.
func (c *Config) ProjectID(credentials []byte) (string, error) {
	if c.Docstore.ProjectID != "" {
		return c.Docstore.ProjectID, nil
	}

	var account struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credentials, &account); err != nil {
		return "", fmt.Errorf("parsing service account: %w", err)
	}
	if account.ProjectID == "" {
		return "", fmt.Errorf("no project_id configured or present in the service account")
	}
	return account.ProjectID, nil
}
