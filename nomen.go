// Package nomen derives database table and column names from Go model
// definitions: pluralized, optionally underscored table names with explicit
// overrides, column naming with per-attribute overrides, and conditional
// injection of timestamp and soft-delete attributes.
package nomen

import (
	"context"
	"sync"

	"github.com/ormkit/nomen/logger"
	"github.com/ormkit/nomen/schema"
)

// Config configures a Registry
type Config struct {
	// NamingStrategy derives table and column names, defaults to a
	// pluralizing, non-underscored schema.NamingStrategy. Per-model
	// Underscored/FreezeTableName options only take effect on a
	// schema.NamingStrategy; custom Namer implementations ignore them.
	NamingStrategy schema.Namer
	// Logger, defaults to logger.Default
	Logger logger.Interface
	// DisableTimestamps turns off CreatedAt/UpdatedAt injection for all
	// models defined through this registry
	DisableTimestamps bool
}

// Registry parses and caches model definitions
type Registry struct {
	config     *Config
	cacheStore *sync.Map
}

// New creates a Registry with the given config
func New(config *Config) *Registry {
	if config == nil {
		config = &Config{}
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	return &Registry{
		config:     config,
		cacheStore: &sync.Map{},
	}
}

// Define parses the model with the given options and caches the result.
// Subsequent calls for the same model type return the cached schema.
func (r *Registry) Define(model interface{}, opts ...schema.Options) (*schema.Schema, error) {
	o := schema.Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if r.config.DisableTimestamps {
		o.DisableTimestamps = true
	}

	s, err := schema.ParseWithOptions(model, r.cacheStore, r.config.NamingStrategy, o)
	if err != nil {
		r.config.Logger.Error(context.Background(), "failed to parse model: %v", err)
		return nil, err
	}
	return s, nil
}

// TableName resolves the table name for the model
func (r *Registry) TableName(model interface{}, opts ...schema.Options) (string, error) {
	s, err := r.Define(model, opts...)
	if err != nil {
		return "", err
	}
	return s.Table, nil
}

// ColumnName resolves the column name for the model's attribute
func (r *Registry) ColumnName(model interface{}, field string, opts ...schema.Options) (string, error) {
	s, err := r.Define(model, opts...)
	if err != nil {
		return "", err
	}
	if f := s.LookUpField(field); f != nil {
		return f.DBName, nil
	}
	return "", ErrFieldNotFound
}

// Config returns the registry config
func (r *Registry) Config() *Config {
	return r.config
}
