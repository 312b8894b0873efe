package database

import coreconfig "github.com/m3rciful/ipbot/core/config"

// Config holds PostgreSQL connection settings for the registry store.
type Config = coreconfig.DatabaseConfig
