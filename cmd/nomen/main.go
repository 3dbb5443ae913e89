package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ormkit/nomen"
	"github.com/ormkit/nomen/ddl"
	"github.com/ormkit/nomen/internal/config"
	"github.com/ormkit/nomen/logger"
	"github.com/ormkit/nomen/schema"
)

func main() {
	// --- Flags ---
	pflag.String("config", "", "Path to a YAML config file")
	modelName := pflag.String("name", "", "Model name, e.g.: User")
	attributes := pflag.String("attributes", "", "Model attributes, e.g.: name:string,email:string")
	tableName := pflag.String("table", "", "Explicit table name, used verbatim")
	pflag.String("prefix", "", "Table name prefix")
	pflag.Bool("underscored", false, "Derive snake_case identifiers")
	pflag.Bool("freeze", false, "Use the model name as table name, unmodified")
	pflag.Bool("no-timestamps", false, "Do not inject CreatedAt/UpdatedAt")
	pflag.Bool("paranoid", false, "Inject a soft-delete timestamp attribute")
	pflag.String("created-at", "", "Rename the created-at attribute")
	pflag.String("updated-at", "", "Rename the updated-at attribute")
	pflag.String("deleted-at", "", "Rename the soft-delete attribute")
	printDDL := pflag.Bool("ddl", false, "Print a CREATE TABLE statement instead of the name mapping")
	pflag.String("log-level", "", "Log level: silent, error, warn, info")
	pflag.String("log-format", "", "Log format: console or json")
	pflag.Parse()

	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	if *modelName == "" {
		fmt.Fprintln(os.Stderr, "usage: nomen --name User --attributes name:string,email:string [--underscored] [--ddl]")
		os.Exit(2)
	}

	modelType, err := buildModelType(*attributes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	registry := nomen.New(&nomen.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:     cfg.Naming.TablePrefix,
			Underscored:     cfg.Naming.Underscored,
			FreezeTableName: cfg.Naming.FreezeTableName,
		},
		Logger:            log,
		DisableTimestamps: cfg.Naming.DisableTimestamps,
	})

	s, err := registry.Define(reflect.New(modelType).Interface(), schema.Options{
		ModelName: *modelName,
		TableName: *tableName,
		Paranoid:  cfg.Naming.Paranoid,
		CreatedAt: schema.TimestampOption{Field: cfg.Naming.CreatedAt},
		UpdatedAt: schema.TimestampOption{Field: cfg.Naming.UpdatedAt},
		DeletedAt: schema.TimestampOption{Field: cfg.Naming.DeletedAt},
	})
	if err != nil {
		os.Exit(1)
	}

	if *printDDL {
		fmt.Println(ddl.CreateTable(s))
		return
	}

	fmt.Printf("table: %s\n", s.Table)
	for _, name := range s.DBNames {
		fmt.Printf("%s: %s\n", s.FieldsByDBName[name].Name, name)
	}
}

func newLogger(cfg config.LogConfig) logger.Interface {
	lc := logger.Config{
		LogLevel: logger.ParseLevel(cfg.Level),
		Colorful: cfg.Format != "json",
	}
	if cfg.Format == "json" {
		zl := zerolog.New(os.Stderr).
			Level(logger.ZerologLevel(lc.LogLevel)).
			With().
			Timestamp().
			Logger()
		return logger.NewZerologLogger(zl, lc)
	}
	return logger.NewZerologLoggerWithConfig(lc)
}

var attributeTypes = map[string]reflect.Type{
	"string": reflect.TypeOf(""),
	"text":   reflect.TypeOf(""),
	"int":    reflect.TypeOf(int64(0)),
	"uint":   reflect.TypeOf(uint64(0)),
	"float":  reflect.TypeOf(float64(0)),
	"bool":   reflect.TypeOf(false),
	"time":   reflect.TypeOf(time.Time{}),
	"bytes":  reflect.TypeOf([]byte(nil)),
}

// buildModelType assembles a struct type from an attribute list like
// "name:string,email:string". A third segment overrides the column name:
// "score:int:player_score".
func buildModelType(attributes string) (reflect.Type, error) {
	var fields []reflect.StructField
	if attributes != "" {
		for _, attr := range strings.Split(attributes, ",") {
			parts := strings.Split(attr, ":")
			if (len(parts) != 2 && len(parts) != 3) || parts[0] == "" {
				return nil, fmt.Errorf("attribute format is invalid: %s", attr)
			}

			fieldType, ok := attributeTypes[parts[1]]
			if !ok {
				return nil, fmt.Errorf("unknown attribute type %q in %s", parts[1], attr)
			}

			field := reflect.StructField{
				Name: exportedName(parts[0]),
				Type: fieldType,
			}
			if len(parts) == 3 {
				field.Tag = reflect.StructTag(fmt.Sprintf(`nomen:"column:%s"`, parts[2]))
			}
			fields = append(fields, field)
		}
	}
	return reflect.StructOf(fields), nil
}

func exportedName(name string) string {
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
