package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/nomen"
	"github.com/ormkit/nomen/schema"
)

func TestFieldDefaultValues(t *testing.T) {
	type Account struct {
		ID       uint    `nomen:"primaryKey"`
		Role     string  `nomen:"default:'guest'"`
		Age      int     `nomen:"default:18"`
		Active   bool    `nomen:"default:true"`
		Balance  float64 `nomen:"default:0.5"`
		Raw      string  `nomen:"default:uuid_generate_v4()"`
		Opened   time.Time
		Recorded time.Time `nomen:"default:2024-01-02"`
	}

	s := parse(t, &Account{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})

	role := s.LookUpField("Role")
	require.NotNil(t, role)
	assert.True(t, role.HasDefaultValue)
	assert.Equal(t, "guest", role.DefaultValueInterface)

	assert.Equal(t, int64(18), s.LookUpField("Age").DefaultValueInterface)
	assert.Equal(t, true, s.LookUpField("Active").DefaultValueInterface)
	assert.Equal(t, 0.5, s.LookUpField("Balance").DefaultValueInterface)

	// function defaults are kept as-is
	raw := s.LookUpField("Raw")
	assert.True(t, raw.HasDefaultValue)
	assert.Nil(t, raw.DefaultValueInterface)
	assert.Equal(t, "uuid_generate_v4()", raw.DefaultValue)

	recorded := s.LookUpField("Recorded")
	require.NotNil(t, recorded.DefaultValueInterface)
	parsed, ok := recorded.DefaultValueInterface.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
}

func TestFieldSizes(t *testing.T) {
	type Sized struct {
		ID    uint `nomen:"primaryKey"`
		Small int8
		Wide  int64
		Short string `nomen:"size:32"`
		Money float64 `nomen:"precision:12;scale:2"`
	}

	s := parse(t, &Sized{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})

	assert.Equal(t, 8, s.LookUpField("Small").Size)
	assert.Equal(t, 64, s.LookUpField("Wide").Size)
	assert.Equal(t, 32, s.LookUpField("Short").Size)
	assert.Equal(t, 12, s.LookUpField("Money").Precision)
	assert.Equal(t, 2, s.LookUpField("Money").Scale)
}

func TestFieldDataTypes(t *testing.T) {
	type Blob struct {
		ID      uint `nomen:"primaryKey"`
		Payload []byte
		Flag    bool
		Note    string
		At      time.Time
		Gone    nomen.DeletedAt
		Custom  string `nomen:"type:jsonb"`
	}

	s := parse(t, &Blob{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})

	assert.Equal(t, schema.Bytes, s.LookUpField("Payload").DataType)
	assert.Equal(t, schema.Bool, s.LookUpField("Flag").DataType)
	assert.Equal(t, schema.String, s.LookUpField("Note").DataType)
	assert.Equal(t, schema.Time, s.LookUpField("At").DataType)
	// nullable time valuers unwrap to time
	assert.Equal(t, schema.Time, s.LookUpField("Gone").DataType)
	assert.Equal(t, schema.DataType("jsonb"), s.LookUpField("Custom").DataType)
}

func TestPointerFieldsUnwrapped(t *testing.T) {
	type Profile struct {
		ID   uint `nomen:"primaryKey"`
		Bio  *string
		Rank *int32
	}

	s := parse(t, &Profile{}, schema.NamingStrategy{Underscored: true}, schema.Options{DisableTimestamps: true})

	assert.Equal(t, schema.String, s.LookUpField("Bio").DataType)
	assert.Equal(t, schema.Int, s.LookUpField("Rank").DataType)
	assert.Equal(t, 32, s.LookUpField("Rank").Size)
}
