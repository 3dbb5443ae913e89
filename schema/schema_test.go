package schema_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/nomen"
	"github.com/ormkit/nomen/schema"
)

type User struct {
	ID    uint   `nomen:"primaryKey;autoIncrement"`
	Name  string `nomen:"size:64;not null"`
	Email string `nomen:"column:email_address;unique"`
	Age   int
}

type Order struct {
	ID uint `nomen:"primaryKey"`
}

func (Order) TableName() string {
	return "order_history"
}

func parse(t *testing.T, dest interface{}, namer schema.Namer, opts schema.Options) *schema.Schema {
	t.Helper()
	s, err := schema.ParseWithOptions(dest, &sync.Map{}, namer, opts)
	require.NoError(t, err)
	return s
}

func TestParseUnderscored(t *testing.T) {
	s := parse(t, &User{}, schema.NamingStrategy{Underscored: true}, schema.Options{})

	assert.Equal(t, "users", s.Table)
	assert.Equal(t, []string{"id", "name", "email_address", "age", "created_at", "updated_at"}, s.DBNames)

	require.NotNil(t, s.PrioritizedPrimaryField)
	assert.Equal(t, "id", s.PrioritizedPrimaryField.DBName)
	assert.True(t, s.PrioritizedPrimaryField.AutoIncrement)

	email := s.LookUpField("Email")
	require.NotNil(t, email)
	assert.Equal(t, "email_address", email.DBName)
	assert.True(t, email.Unique)

	name := s.LookUpField("Name")
	require.NotNil(t, name)
	assert.Equal(t, 64, name.Size)
	assert.True(t, name.NotNull)
}

func TestParsePlainKeepsIdentifiers(t *testing.T) {
	s := parse(t, &User{}, schema.NamingStrategy{}, schema.Options{})

	assert.Equal(t, "Users", s.Table)
	assert.Equal(t, "Age", s.LookUpField("Age").DBName)
	// explicit column override wins regardless of underscored
	assert.Equal(t, "email_address", s.LookUpField("Email").DBName)
	assert.Equal(t, "CreatedAt", s.LookUpField("CreatedAt").DBName)
}

func TestTablerOverride(t *testing.T) {
	s := parse(t, &Order{}, schema.NamingStrategy{Underscored: true}, schema.Options{})
	assert.Equal(t, "order_history", s.Table)
}

func TestExplicitTableNameWinsOverEverything(t *testing.T) {
	opts := schema.Options{TableName: "legacy_orders", FreezeTableName: true, Underscored: true}
	s := parse(t, &Order{}, schema.NamingStrategy{TablePrefix: "t_"}, opts)
	assert.Equal(t, "legacy_orders", s.Table)
}

func TestFreezeTableNameOption(t *testing.T) {
	s := parse(t, &User{}, schema.NamingStrategy{Underscored: true}, schema.Options{FreezeTableName: true})
	assert.Equal(t, "User", s.Table)
	// columns still follow underscored
	assert.Equal(t, "age", s.LookUpField("Age").DBName)
}

type upperNamer struct {
	schema.NamingStrategy
}

func (upperNamer) TableName(table string) string {
	return strings.ToUpper(table)
}

func TestCustomNamerIgnoresNamingFlags(t *testing.T) {
	// per-model Underscored/FreezeTableName only merge onto a
	// NamingStrategy, a custom namer resolves names on its own
	opts := schema.Options{Underscored: true, FreezeTableName: true}
	s := parse(t, &User{}, upperNamer{}, opts)
	assert.Equal(t, "USER", s.Table)
}

func TestModelNameOverride(t *testing.T) {
	s := parse(t, &User{}, schema.NamingStrategy{Underscored: true}, schema.Options{ModelName: "Person"})
	assert.Equal(t, "people", s.Table)
}

func TestParseCached(t *testing.T) {
	cacheStore := &sync.Map{}
	first, err := schema.Parse(&User{}, cacheStore, schema.NamingStrategy{})
	require.NoError(t, err)
	second, err := schema.Parse(&User{}, cacheStore, schema.NamingStrategy{Underscored: true})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestParseUnsupported(t *testing.T) {
	_, err := schema.Parse(42, &sync.Map{}, schema.NamingStrategy{})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnsupportedDataType)

	_, err = schema.Parse(nil, &sync.Map{}, schema.NamingStrategy{})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnsupportedDataType)
}

func TestEmbeddedModel(t *testing.T) {
	type Post struct {
		nomen.Model
		Title string
	}

	s := parse(t, &Post{}, schema.NamingStrategy{Underscored: true}, schema.Options{})

	assert.Equal(t, "posts", s.Table)
	assert.Equal(t, []string{"id", "created_at", "updated_at", "deleted_at", "title"}, s.DBNames)
	assert.True(t, s.Paranoid)
	require.NotNil(t, s.SoftDeleteField)
	assert.Equal(t, "deleted_at", s.SoftDeleteField.DBName)

	created := s.LookUpField("CreatedAt")
	require.NotNil(t, created)
	assert.NotZero(t, created.AutoCreateTime)
	assert.False(t, created.Synthetic)
}

func TestEmbeddedPrefix(t *testing.T) {
	type Address struct {
		City string
		Zip  string `nomen:"column:zip_code"`
	}
	type Company struct {
		ID      uint    `nomen:"primaryKey"`
		Address Address `nomen:"embedded;embeddedPrefix:addr_"`
	}

	s := parse(t, &Company{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})

	assert.Equal(t, []string{"id", "addr_city", "addr_zip_code"}, s.DBNames)
}

func TestIgnoredField(t *testing.T) {
	type Session struct {
		ID    uint   `nomen:"primaryKey"`
		Token string `nomen:"-"`
	}

	s := parse(t, &Session{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})
	assert.Equal(t, []string{"id"}, s.DBNames)
	assert.Nil(t, s.LookUpField("Token"))
}
