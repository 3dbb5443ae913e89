package schema

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer derives database identifiers from model and attribute names
type Namer interface {
	TableName(table string) string
	ColumnName(table, column string) string
	JoinTableName(table string) string
	ForeignKeyName(table, column string) string
	CheckerName(table, column string) string
	IndexName(table, column string) string
}

// NamingStrategy tables, columns naming strategy
type NamingStrategy struct {
	TablePrefix     string
	Underscored     bool
	FreezeTableName bool
}

// TableName convert model name to table name, pluralized unless frozen
func (ns NamingStrategy) TableName(str string) string {
	if ns.FreezeTableName {
		return ns.TablePrefix + str
	}
	name := inflection.Plural(str)
	if ns.Underscored {
		name = toDBName(name)
	}
	return ns.TablePrefix + name
}

// ColumnName convert attribute name to column name
func (ns NamingStrategy) ColumnName(table, column string) string {
	if ns.Underscored {
		return toDBName(column)
	}
	return column
}

// JoinTableName convert string to join table name
func (ns NamingStrategy) JoinTableName(str string) string {
	if ns.FreezeTableName {
		return ns.TablePrefix + str
	}
	name := inflection.Plural(str)
	if ns.Underscored {
		name = toDBName(name)
	}
	return ns.TablePrefix + name
}

// ForeignKeyName generate fk name for table and column
func (ns NamingStrategy) ForeignKeyName(table, column string) string {
	return fmt.Sprintf("fk_%s_%s", table, ns.ColumnName(table, column))
}

// CheckerName generate checker name
func (ns NamingStrategy) CheckerName(table, column string) string {
	return fmt.Sprintf("chk_%s_%s", table, column)
}

// IndexName generate index name
func (ns NamingStrategy) IndexName(table, column string) string {
	idxName := fmt.Sprintf("idx_%v_%v", table, ns.ColumnName(table, column))

	if utf8.RuneCountInString(idxName) > 64 {
		h := sha1.New()
		h.Write([]byte(idxName))
		bs := h.Sum(nil)

		idxName = string([]rune(idxName)[:56]) + fmt.Sprintf("%x", bs)[:8]
	}
	return idxName
}

// withOptions overlays per-model naming options onto the base strategy
func (ns NamingStrategy) withOptions(opts Options) NamingStrategy {
	if opts.Underscored {
		ns.Underscored = true
	}
	if opts.FreezeTableName {
		ns.FreezeTableName = true
	}
	return ns
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	titleCaser := cases.Title(language.Und, cases.NoLower)
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, titleCaser.String(strings.ToLower(initialism)))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}
