package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCSVPassthrough(t *testing.T) {
	in := " id ,\"name\"\n1, alice \n2,bob\n"
	out, err := Normalize("people.csv", []byte(in))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alice\n2,bob\n", out)
}

func TestNormalizeTSV(t *testing.T) {
	in := "id\tname\n1\talice\n"
	out, err := Normalize("people.tsv", []byte(in))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alice\n", out)
}

func TestNormalizeRaggedRowsPadded(t *testing.T) {
	in := "a,b,c\n1,2\n"
	out, err := Normalize("data.csv", []byte(in))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,2,\n", out)
}

func TestNormalizeJSONArray(t *testing.T) {
	in := `[{"id":1,"name":"alice"},{"id":2,"name":"bob"}]`
	out, err := Normalize("people.json", []byte(in))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alice\n2,bob\n", out)
}

func TestNormalizeJSONUnionOfKeys(t *testing.T) {
	in := `[{"id":1},{"id":2,"extra":"x"}]`
	out, err := Normalize("data.json", []byte(in))
	require.NoError(t, err)
	assert.Equal(t, "extra,id\n,1\nx,2\n", out)
}

func TestNormalizeJSONRejectsNonArray(t *testing.T) {
	_, err := Normalize("data.json", []byte(`{"id":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array of objects")
}

func TestNormalizeJSONRejectsScalarElements(t *testing.T) {
	_, err := Normalize("data.json", []byte(`[1,2,3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object")
}

func TestNormalizeRejectsUnsupportedExtension(t *testing.T) {
	_, err := Normalize("report.xlsx", []byte("binary"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestNormalizeRejectsEmptyFile(t *testing.T) {
	_, err := Normalize("empty.csv", []byte("  \n "))
	require.Error(t, err)
}

func TestParseCSVTypesCells(t *testing.T) {
	ds, err := ParseCSV("id,name,score\n1,alice,9.5\n2,bob,7\n")
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 1, ds[0]["id"])
	assert.Equal(t, "alice", ds[0]["name"])
	assert.Equal(t, 9.5, ds[0]["score"])
	assert.Equal(t, 7, ds[1]["score"])
}

func TestWriteCSVRoundTrip(t *testing.T) {
	text := "id,name\n1,alice\n2,bob\n"
	ds, err := ParseCSV(text)
	require.NoError(t, err)
	out, err := WriteCSV(ds)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	out, err := WriteCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseCSVHeaderCleaning(t *testing.T) {
	ds, err := ParseCSV(" \"country\" , year\nUS,2023\n")
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "US", ds[0]["country"])
	assert.Equal(t, 2023, ds[0]["year"])
	assert.False(t, strings.ContainsAny("countryyear", `"`))
}
