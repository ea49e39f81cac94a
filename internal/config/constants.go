package config

import "time"

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Defaults
const (
	DefaultStoreTimeout         = 5 * time.Second
	DefaultDBMaxConns           = 20
	DefaultDBMaxConnIdleTime    = 5 * time.Minute
	DefaultDBMaxConnLifetime    = 30 * time.Minute
	DefaultDedupeWindow         = 10 * time.Minute
	DefaultDedupeCacheSize      = 10000
	DefaultMessageRetentionDays = 30
	DefaultCleanupSchedule      = "@daily"
	DefaultWorkerCount          = 2
)
