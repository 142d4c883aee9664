package config

import (
	"flag"
	"os"
	"time"

	"github.com/avilov/fieldsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   primary database DSN
//	-k string   foreign catalog database DSN
//	-s string   storage backend ("s3" or "file")
//	-f string   file backend root directory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-w int      sync worker pool size
//	-q int      catalog query timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-s", "-f", "-u", "-p", "-b", "-g", "-e", "-w", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.PrimaryDatabaseDSN, "d", config.PrimaryDatabaseDSN, "primary database DSN")
	fs.StringVar(&config.CatalogDatabaseDSN, "k", config.CatalogDatabaseDSN, "foreign catalog database DSN")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (s3 or file)")
	fs.StringVar(&config.FileStorageDir, "f", config.FileStorageDir, "file backend root directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.IntVar(&config.SyncWorkers, "w", config.SyncWorkers, "sync worker pool size")

	catalogQueryTimeout := fs.Int("q", int(config.CatalogQueryTimeout.Seconds()), "catalog query timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CatalogQueryTimeout = time.Duration(*catalogQueryTimeout) * time.Second
}
