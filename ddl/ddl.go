// Package ddl renders CREATE TABLE statements from parsed schemas. The
// output is an illustration of the resolved identifiers, not a migration:
// nothing here touches a database.
package ddl

import (
	"fmt"
	"strings"

	"github.com/ormkit/nomen/schema"
	"github.com/ormkit/nomen/utils"
)

// Quote wraps an identifier in ANSI double quotes. Embedded quotes are
// doubled and characters that cannot appear in an identifier are dropped.
func Quote(name string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range name {
		switch {
		case c == '"':
			sb.WriteString(`""`)
		case utils.IsValidDBNameChar(c):
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// DataTypeOf maps a field to its SQL column type
func DataTypeOf(field *schema.Field) string {
	switch field.DataType {
	case schema.Bool:
		return "BOOLEAN"
	case schema.Int, schema.Uint:
		sqlType := "INTEGER"
		if field.Size >= 64 {
			sqlType = "BIGINT"
		}
		if field.AutoIncrement {
			sqlType += " AUTO_INCREMENT"
		}
		return sqlType
	case schema.Float:
		if field.Precision > 0 {
			if field.Scale > 0 {
				return fmt.Sprintf("DECIMAL(%d,%d)", field.Precision, field.Scale)
			}
			return fmt.Sprintf("DECIMAL(%d)", field.Precision)
		}
		return "FLOAT"
	case schema.String:
		if field.Size > 0 && field.Size < 65532 {
			return fmt.Sprintf("VARCHAR(%d)", field.Size)
		}
		return "VARCHAR(65532)"
	case schema.Time:
		return "TIMESTAMP"
	case schema.Bytes:
		if field.Size > 0 && field.Size < 65532 {
			return fmt.Sprintf("BINARY(%d)", field.Size)
		}
		return "BINARY(65532)"
	default:
		// explicit type tag values pass through as written
		return strings.ToUpper(string(field.DataType))
	}
}

// ColumnDefinition renders one column clause
func ColumnDefinition(field *schema.Field) string {
	var sb strings.Builder
	sb.WriteString(Quote(field.DBName))
	sb.WriteByte(' ')
	sb.WriteString(DataTypeOf(field))

	if field.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if field.Unique {
		sb.WriteString(" UNIQUE")
	}
	if field.HasDefaultValue && field.DefaultValue != "" && !field.AutoIncrement {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(defaultValue(field))
	}
	if field.Comment != "" {
		sb.WriteString(" COMMENT ")
		sb.WriteString(quoteLiteral(field.Comment))
	}

	return sb.String()
}

func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// defaultValue renders the DEFAULT clause value. String and time literals
// are quoted, expressions like now() and NULL pass through as written.
func defaultValue(field *schema.Field) string {
	if _, ok := field.DefaultValueInterface.(string); ok {
		return quoteLiteral(field.DefaultValue)
	}

	if field.DataType == schema.Time || field.DataType == schema.String {
		v := field.DefaultValue
		if strings.EqualFold(v, "null") || (strings.Contains(v, "(") && strings.Contains(v, ")")) {
			return v
		}
		return quoteLiteral(strings.Trim(strings.Trim(v, "'"), `"`))
	}

	return field.DefaultValue
}

// CreateTable renders a CREATE TABLE statement for the schema. Columns
// appear in definition order, injected timestamp attributes last.
func CreateTable(s *schema.Schema) string {
	var defs []string
	for _, name := range s.DBNames {
		defs = append(defs, ColumnDefinition(s.FieldsByDBName[name]))
	}

	if len(s.PrimaryFields) > 0 {
		var pks []string
		for _, f := range s.PrimaryFields {
			pks = append(pks, Quote(f.DBName))
		}
		defs = append(defs, "PRIMARY KEY ("+strings.Join(pks, ",")+")")
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(Quote(s.Table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(defs, ", "))
	sb.WriteString(");")
	return sb.String()
}
