package integrity

import "time"

// Config holds configuration for the integrity feature.
type Config struct {
	// Workers is the number of files hashed concurrently. Values below 2 hash sequentially.
	Workers int `mapstructure:"workers" default:"4"`
	// BaselineCacheTTLSeconds is how long a baseline read from the bucket is reused. Zero disables caching.
	BaselineCacheTTLSeconds int `mapstructure:"baseline_cache_ttl_seconds" default:"300"`
	// MaxUploadMB caps the total size of the files uploaded in one request.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"512"`
	// BaselinePrefix is the object prefix under which stored baselines are looked up.
	BaselinePrefix string `mapstructure:"baseline_prefix" default:"baselines/"`
}

// BaselineCacheTTL returns the cache TTL as a duration.
func (c Config) BaselineCacheTTL() time.Duration {
	if c.BaselineCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.BaselineCacheTTLSeconds) * time.Second
}

// MaxUploadBytes returns the upload cap in bytes. Zero means unlimited.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// BaselineKey returns the object key of the stored baseline called name.
func (c Config) BaselineKey(name string) string {
	key := c.BaselinePrefix + name
	if len(name) < 4 || name[len(name)-4:] != ".csv" {
		key += ".csv"
	}
	return key
}
