package nomen

import (
	"errors"

	"github.com/ormkit/nomen/schema"
)

var (
	// ErrUnsupportedDataType unsupported data type
	ErrUnsupportedDataType = schema.ErrUnsupportedDataType
	// ErrFieldNotFound the model has no attribute with that name
	ErrFieldNotFound = errors.New("field not found")
)
