package schema

// Tabler lets a model type override the derived table name. The returned
// name is used verbatim, bypassing pluralization, underscoring and prefix.
type Tabler interface {
	TableName() string
}

// DataTyperInterface lets a field type declare its database data type
type DataTyperInterface interface {
	NomenDataType() string
}
