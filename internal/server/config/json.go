package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avilov/fieldsync/internal/flagx"
	"github.com/avilov/fieldsync/internal/timex"
)

// JsonConfig is the JSON-unmarshalling counterpart of Config. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "30s" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config.
type JsonConfig struct {
	PrimaryDatabaseDSN  string         `json:"primary_database_dsn"`
	CatalogDatabaseDSN  string         `json:"catalog_database_dsn"`
	StorageBackend      string         `json:"storage_backend"`
	FileStorageDir      string         `json:"file_storage_dir"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	SyncWorkers         int            `json:"sync_workers"`
	CatalogQueryTimeout timex.Duration `json:"catalog_query_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no config flag is present
// nothing is loaded. An unreadable or invalid file panics: a half-applied
// configuration is worse than refusing to start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.PrimaryDatabaseDSN = c.PrimaryDatabaseDSN
	config.CatalogDatabaseDSN = c.CatalogDatabaseDSN
	config.StorageBackend = c.StorageBackend
	config.FileStorageDir = c.FileStorageDir
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.SyncWorkers = c.SyncWorkers
	config.CatalogQueryTimeout = time.Duration(c.CatalogQueryTimeout.Duration)
}
