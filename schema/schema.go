package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrUnsupportedDataType unsupported data type
var ErrUnsupportedDataType = errors.New("unsupported data type")

type Schema struct {
	Name                    string
	ModelType               reflect.Type
	Table                   string
	PrioritizedPrimaryField *Field
	PrimaryFields           []*Field
	Fields                  []*Field
	FieldsByName            map[string]*Field
	FieldsByDBName          map[string]*Field
	DBNames                 []string
	Paranoid                bool
	SoftDeleteField         *Field
	err                     error
	namer                   Namer
	options                 Options
	cacheStore              *sync.Map
}

func (schema Schema) String() string {
	if schema.ModelType == nil || schema.ModelType.Name() == "" {
		return fmt.Sprintf("%v(%v)", schema.Name, schema.Table)
	}
	return fmt.Sprintf("%v.%v", schema.ModelType.PkgPath(), schema.ModelType.Name())
}

func (schema Schema) LookUpField(name string) *Field {
	if field, ok := schema.FieldsByDBName[name]; ok {
		return field
	}
	if field, ok := schema.FieldsByName[name]; ok {
		return field
	}
	return nil
}

func (schema *Schema) lookUpDeclared(name string) *Field {
	for _, field := range schema.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Parse parses a model struct with zero-value options
func Parse(dest interface{}, cacheStore *sync.Map, namer Namer) (*Schema, error) {
	return ParseWithOptions(dest, cacheStore, namer, Options{})
}

// ParseWithOptions parses a model struct into a Schema, deriving the table
// name and column names through the namer merged with the given options.
// Parsed schemas are cached by model type.
func ParseWithOptions(dest interface{}, cacheStore *sync.Map, namer Namer, opts Options) (*Schema, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
	}

	modelType := reflect.Indirect(reflect.ValueOf(dest)).Type()
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Array || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	if modelType.Kind() != reflect.Struct {
		if modelType.PkgPath() == "" {
			return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
		}
		return nil, fmt.Errorf("%w: %v.%v", ErrUnsupportedDataType, modelType.PkgPath(), modelType.Name())
	}

	if v, ok := cacheStore.Load(modelType); ok {
		s := v.(*Schema)
		return s, s.err
	}

	if ns, ok := namer.(NamingStrategy); ok {
		namer = ns.withOptions(opts)
	}

	modelName := opts.ModelName
	if modelName == "" {
		modelName = modelType.Name()
	}

	schema := &Schema{
		Name:           modelName,
		ModelType:      modelType,
		FieldsByName:   map[string]*Field{},
		FieldsByDBName: map[string]*Field{},
		namer:          namer,
		options:        opts,
		cacheStore:     cacheStore,
	}
	schema.Table = schema.resolveTableName(modelType, opts)

	defer func() {
		if schema.err != nil {
			cacheStore.Delete(modelType)
		}
	}()

	for i := 0; i < modelType.NumField(); i++ {
		if fieldStruct := modelType.Field(i); fieldStruct.IsExported() {
			if field := schema.ParseField(fieldStruct); field.EmbeddedSchema != nil {
				schema.Fields = append(schema.Fields, field.EmbeddedSchema.Fields...)
			} else if !field.Ignored {
				schema.Fields = append(schema.Fields, field)
			}
		}
	}

	schema.applyTimestamps()

	for _, field := range schema.Fields {
		if field.DBName == "" {
			field.DBName = namer.ColumnName(schema.Table, field.namePrefix+field.Name)
		}

		if field.DBName != "" {
			// nonexistence or shortest path or first appear prioritized
			if v, ok := schema.FieldsByDBName[field.DBName]; !ok || len(field.BindNames) < len(v.BindNames) {
				if ok {
					schema.removePrimaryField(v)
				}
				schema.FieldsByDBName[field.DBName] = field
				schema.FieldsByName[field.Name] = field
				if !ok {
					schema.DBNames = append(schema.DBNames, field.DBName)
				}

				if field.PrimaryKey {
					if schema.PrioritizedPrimaryField == nil {
						schema.PrioritizedPrimaryField = field
					}
					schema.PrimaryFields = append(schema.PrimaryFields, field)
				}
			}
		}

		if _, ok := schema.FieldsByName[field.Name]; !ok {
			schema.FieldsByName[field.Name] = field
		}
	}

	if f := schema.lookUpDeclared(opts.deletedAtName()); f != nil && f.DataType == Time {
		schema.Paranoid = true
		schema.SoftDeleteField = f
	}

	if schema.err == nil {
		cacheStore.Store(modelType, schema)
	}

	return schema, schema.err
}

func (schema *Schema) resolveTableName(modelType reflect.Type, opts Options) string {
	if opts.TableName != "" {
		return opts.TableName
	}

	modelValue := reflect.New(modelType)
	if tabler, ok := modelValue.Interface().(Tabler); ok {
		return tabler.TableName()
	}

	return schema.namer.TableName(schema.Name)
}

func (schema *Schema) removePrimaryField(field *Field) {
	if !field.PrimaryKey {
		return
	}
	if schema.PrioritizedPrimaryField == field {
		schema.PrioritizedPrimaryField = nil
	}
	for idx, f := range schema.PrimaryFields {
		if f == field {
			schema.PrimaryFields = append(schema.PrimaryFields[0:idx], schema.PrimaryFields[idx+1:]...)
			break
		}
	}
	if schema.PrioritizedPrimaryField == nil && len(schema.PrimaryFields) > 0 {
		schema.PrioritizedPrimaryField = schema.PrimaryFields[0]
	}
}
