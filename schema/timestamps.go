package schema

// applyTimestamps injects the auto-managed timestamp attributes the model
// options ask for. Attributes the struct already declares are left alone,
// struct declarations win over synthesis. Injected attributes carry no
// backing struct field and are marked Synthetic.
func (schema *Schema) applyTimestamps() {
	opts := schema.options

	if !opts.DisableTimestamps {
		if !opts.CreatedAt.Disabled {
			if name := opts.createdAtName(); schema.lookUpDeclared(name) == nil {
				field := schema.syntheticTimeField(name)
				field.AutoCreateTime = UnixSecond
				field.NotNull = true
				schema.Fields = append(schema.Fields, field)
			}
		}

		if !opts.UpdatedAt.Disabled {
			if name := opts.updatedAtName(); schema.lookUpDeclared(name) == nil {
				field := schema.syntheticTimeField(name)
				field.AutoUpdateTime = UnixSecond
				field.NotNull = true
				schema.Fields = append(schema.Fields, field)
			}
		}
	}

	if opts.Paranoid && !opts.DeletedAt.Disabled {
		if name := opts.deletedAtName(); schema.lookUpDeclared(name) == nil {
			// nullable, NULL means the row is live
			field := schema.syntheticTimeField(name)
			schema.Fields = append(schema.Fields, field)
		}
	}
}

func (schema *Schema) syntheticTimeField(name string) *Field {
	return &Field{
		Name:              name,
		BindNames:         []string{name},
		DataType:          Time,
		FieldType:         TimeReflectType,
		IndirectFieldType: TimeReflectType,
		TagSettings:       map[string]string{},
		Synthetic:         true,
		Schema:            schema,
	}
}
