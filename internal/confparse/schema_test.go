package confparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type siteSettings struct {
	Name    string
	Commits int64
}

var testSchema = Schema[siteSettings]{
	StringField("name", func(c *siteSettings) *string { return &c.Name }),
	IntField("limit/commits", func(c *siteSettings) *int64 { return &c.Commits }),
}

func TestSchemaApply(t *testing.T) {
	input := "name = repos\nbogus = 1\n[limit]\ncommits = many\ncommits = 25\nno equals here\n"
	cfg := siteSettings{Commits: -1}

	var warnings []string
	err := testSchema.Apply(&cfg, NewParser(strings.NewReader(input)), func(err error) {
		warnings = append(warnings, err.Error())
	})
	require.NoError(t, err)

	assert.Equal(t, siteSettings{Name: "repos", Commits: 25}, cfg)
	require.Len(t, warnings, 3)
	assert.Equal(t, "unknown config-key 'bogus'", warnings[0])
	assert.Contains(t, warnings[1], "invalid integer")
	assert.Contains(t, warnings[2], "line 6")
}

func TestSchemaSetUnknown(t *testing.T) {
	var cfg siteSettings
	err := testSchema.Set(&cfg, "nope", "x")
	var unknown *UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Key)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "integer", KindInteger.String())
}

func TestSchemaGetAndEach(t *testing.T) {
	cfg := siteSettings{Name: "x", Commits: -1}

	v, ok := testSchema.Get(&cfg, "limit/commits")
	require.True(t, ok)
	assert.Equal(t, "-1", v)
	_, ok = testSchema.Get(&cfg, "missing")
	assert.False(t, ok)

	var got []string
	testSchema.Each(&cfg, func(k, v string) { got = append(got, k+"="+v) })
	assert.Equal(t, []string{"name=x", "limit/commits=-1"}, got)
}

func TestSchemaApplyReadError(t *testing.T) {
	var cfg siteSettings
	err := testSchema.Apply(&cfg, NewParser(failingReader{}), nil)
	require.Error(t, err)
}
