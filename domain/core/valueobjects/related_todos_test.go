package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRelatedTodoIDs_StringList(t *testing.T) {
	related := NormalizeRelatedTodoIDs([]string{"a", "b", "a", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, related.Values())
	assert.Equal(t, 3, related.Len())
}

func TestNormalizeRelatedTodoIDs_LegacyShapesAgree(t *testing.T) {
	// The same logical list written in every shape the store has held must
	// normalize to the same result.
	fromList := NormalizeRelatedTodoIDs([]string{"a", "b", "a"})
	fromJSONString := NormalizeRelatedTodoIDs(`["a","b","a"]`)
	fromDecodedJSON := NormalizeRelatedTodoIDs([]interface{}{"a", "b", "a"})

	assert.Equal(t, []string{"a", "b"}, fromList.Values())
	assert.Equal(t, fromList.Values(), fromJSONString.Values())
	assert.Equal(t, fromList.Values(), fromDecodedJSON.Values())
}

func TestNormalizeRelatedTodoIDs_BareID(t *testing.T) {
	related := NormalizeRelatedTodoIDs("todo-123")

	assert.Equal(t, []string{"todo-123"}, related.Values())
}

func TestNormalizeRelatedTodoIDs_NilAndUnusable(t *testing.T) {
	assert.True(t, NormalizeRelatedTodoIDs(nil).IsEmpty())
	assert.True(t, NormalizeRelatedTodoIDs("").IsEmpty())
	assert.True(t, NormalizeRelatedTodoIDs(42).IsEmpty())
	assert.True(t, NormalizeRelatedTodoIDs(map[string]string{"a": "b"}).IsEmpty())
}

func TestNormalizeRelatedTodoIDs_JSONObjectStringIsBareID(t *testing.T) {
	// Valid JSON but not a list: treated as one opaque ID.
	related := NormalizeRelatedTodoIDs(`{"a":1}`)

	assert.Equal(t, []string{`{"a":1}`}, related.Values())
}

func TestNormalizeRelatedTodoIDs_DropsEmptyAndWhitespace(t *testing.T) {
	related := NormalizeRelatedTodoIDs([]string{" a ", "", "  ", "b"})

	assert.Equal(t, []string{"a", "b"}, related.Values())
}

func TestNormalizeRelatedTodoIDs_MixedTypeJSONListKeepsStrings(t *testing.T) {
	related := NormalizeRelatedTodoIDs(`["a", 1, null, "b"]`)

	assert.Equal(t, []string{"a", "b"}, related.Values())
}

func TestNormalizeRelatedTodoIDs_Idempotent(t *testing.T) {
	once := NormalizeRelatedTodoIDs([]string{"a", "b", "a"})
	twice := NormalizeRelatedTodoIDs(once)

	assert.Equal(t, once.Values(), twice.Values())
}

func TestRelatedTodoIDs_Contains(t *testing.T) {
	related := NormalizeRelatedTodoIDs([]string{"a", "b"})

	assert.True(t, related.Contains("a"))
	assert.False(t, related.Contains("c"))
}

func TestRelatedTodoIDs_ValuesReturnsCopy(t *testing.T) {
	related := NormalizeRelatedTodoIDs([]string{"a", "b"})

	values := related.Values()
	values[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, related.Values())
}

func TestRelatedTodoIDs_MarshalCanonicalShape(t *testing.T) {
	empty, err := json.Marshal(RelatedTodoIDs{})
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))

	populated, err := json.Marshal(NormalizeRelatedTodoIDs([]string{"a", "b"}))
	assert.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(populated))
}

func TestRelatedTodoIDs_UnmarshalNormalizes(t *testing.T) {
	var related RelatedTodoIDs
	err := json.Unmarshal([]byte(`"[\"a\",\"b\",\"a\"]"`), &related)

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, related.Values())
}
