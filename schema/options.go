package schema

// TimestampOption controls one auto-managed timestamp attribute.
// The zero value keeps the attribute enabled under its default name.
type TimestampOption struct {
	// Disabled drops the attribute entirely
	Disabled bool
	// Field renames the attribute; column naming still applies to the new name
	Field string
}

// Options are per-model definition options. The zero value derives the
// table name by pluralizing the model name and injects CreatedAt/UpdatedAt.
//
// Underscored and FreezeTableName are merged onto the base naming strategy
// with OR semantics, so a flag enabled globally cannot be disabled per model.
// The merge only applies when the namer is a NamingStrategy; a custom Namer
// resolves names on its own and both flags are ignored.
type Options struct {
	// ModelName overrides the struct type name as the base for table-name
	// derivation. Required for anonymous struct types, which have none.
	ModelName string

	// TableName is used verbatim when set, bypassing pluralization,
	// underscoring and any table prefix
	TableName string

	Underscored     bool
	FreezeTableName bool

	// DisableTimestamps turns off CreatedAt/UpdatedAt injection
	DisableTimestamps bool
	CreatedAt         TimestampOption
	UpdatedAt         TimestampOption

	// Paranoid marks the model for soft deletion and injects a
	// deletion-timestamp attribute
	Paranoid  bool
	DeletedAt TimestampOption
}

const (
	defaultCreatedAt = "CreatedAt"
	defaultUpdatedAt = "UpdatedAt"
	defaultDeletedAt = "DeletedAt"
)

func (opts Options) createdAtName() string {
	if opts.CreatedAt.Field != "" {
		return opts.CreatedAt.Field
	}
	return defaultCreatedAt
}

func (opts Options) updatedAtName() string {
	if opts.UpdatedAt.Field != "" {
		return opts.UpdatedAt.Field
	}
	return defaultUpdatedAt
}

func (opts Options) deletedAtName() string {
	if opts.DeletedAt.Field != "" {
		return opts.DeletedAt.Field
	}
	return defaultDeletedAt
}
