// Package config loads typed configuration structs from environment
// variables with github.com/caarlos0/env/v11, reading an optional .env file
// through github.com/joho/godotenv.
//
// Each struct type is parsed once and cached, so packages can call Load for
// their own config type without threading values through constructors.
// Reload and Reset exist for tests that change the environment.
package config
