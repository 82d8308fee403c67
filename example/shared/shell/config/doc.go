// Package config provides database configuration helpers for PostgreSQL
// connections for the example: a small product catalog.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB). The demo
// binary uses them to build a Postgres transaction manager which persists
// the command journal; the DSN can be overridden through the
// CATALOG_DEMO_POSTGRES_DSN environment variable.
//
// This package is part of the shell (infrastructure) layer.
package config
