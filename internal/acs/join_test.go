package acs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInnerJoinKeyIntersection(t *testing.T) {
	left := NewTable(
		[]string{"GEO_ID", "NAME", "DP03_0062E"},
		[][]string{
			{"1400000US25013810101", "Tract 8101.01", "52000"},
			{"1400000US25013810202", "Tract 8102.02", "61000"},
			{"1400000US25013810303", "Tract 8103.03", "47000"},
		},
	)
	right := NewTable(
		[]string{"GEO_ID", "NAME", "DP05_0001E"},
		[][]string{
			{"1400000US25013810101", "Tract 8101.01", "4100"},
			{"1400000US25013810303", "Tract 8103.03", "3900"},
			{"1400000US25013819999", "Tract 8199.99", "1000"},
		},
	)

	joined, err := InnerJoin(left, right, "GEO_ID")
	require.NoError(t, err)

	// Key set equals the intersection of both inputs.
	require.Len(t, joined.Rows, 2)
	keys := make([]string, 0, 2)
	for _, row := range joined.Rows {
		keys = append(keys, joined.Cell(row, "GEO_ID"))
	}
	assert.ElementsMatch(t, []string{"1400000US25013810101", "1400000US25013810303"}, keys)
}

func TestInnerJoinDeduplicatesColumns(t *testing.T) {
	left := NewTable(
		[]string{"GEO_ID", "NAME", "DP03_0062E"},
		[][]string{{"1400000US25013810101", "Left Name", "52000"}},
	)
	right := NewTable(
		[]string{"GEO_ID", "NAME", "DP05_0001E"},
		[][]string{{"1400000US25013810101", "Right Name", "4100"}},
	)

	joined, err := InnerJoin(left, right, "GEO_ID")
	require.NoError(t, err)

	// No duplicated column names; the left NAME wins.
	seen := map[string]int{}
	for _, c := range joined.Columns {
		seen[c]++
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "column %s duplicated", c)
	}
	assert.Equal(t, "Left Name", joined.Cell(joined.Rows[0], "NAME"))
	assert.Equal(t, "4100", joined.Cell(joined.Rows[0], "DP05_0001E"))
}

func TestInnerJoinMissingKeyColumnIsFatal(t *testing.T) {
	withKey := NewTable([]string{"GEO_ID", "A"}, nil)
	withoutKey := NewTable([]string{"B"}, nil)

	_, err := InnerJoin(withoutKey, withKey, "GEO_ID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left table missing key column")

	_, err = InnerJoin(withKey, withoutKey, "GEO_ID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "right table missing key column")
}

func TestReadCSVSkipsDescriptionRow(t *testing.T) {
	csvData := strings.Join([]string{
		`GEO_ID,NAME,DP03_0062E`,
		`Geography,Geographic Area Name,Median household income`,
		`1400000US25013810101,"Tract 8101.01, Hampden County",52000`,
	}, "\n")

	table, err := ReadCSV(strings.NewReader(csvData), ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"GEO_ID", "NAME", "DP03_0062E"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "52000", table.Cell(table.Rows[0], "DP03_0062E"))
	assert.Equal(t, "Tract 8101.01, Hampden County", table.Cell(table.Rows[0], "NAME"))
}

func TestExtractDemographics(t *testing.T) {
	table := NewTable(
		[]string{"GEO_ID", "NAME", "DP03_0062E", "DP05_0001E"},
		[][]string{
			{"1400000US25013810101", "Tract 8101.01", "52000", "4100"},
			{"1400000US25013810202", "Tract 8102.02", "(X)", "3900"},
			{"no-marker-here", "Bad Row", "1", "2"},
		},
	)

	demo, err := ExtractDemographics(table, "GEO_ID", "NAME", map[string]string{
		"MedianHouseholdIncome": "DP03_0062E",
		"TotalPopulation":       "DP05_0001E",
	})
	require.NoError(t, err)

	// The unnormalizable row is skipped, not fatal.
	require.Len(t, demo, 2)

	rec := demo["25013810101"]
	assert.Equal(t, "Tract 8101.01", rec.Name)
	assert.Equal(t, Value{Float: 52000, Valid: true}, rec.Attrs["MedianHouseholdIncome"])

	// A suppressed cell is carried as missing, never a crash.
	assert.False(t, demo["25013810202"].Attrs["MedianHouseholdIncome"].Valid)
	assert.True(t, demo["25013810202"].Attrs["TotalPopulation"].Valid)
}

func TestExtractDemographicsMissingColumnIsFatal(t *testing.T) {
	table := NewTable([]string{"GEO_ID", "NAME"}, nil)
	_, err := ExtractDemographics(table, "GEO_ID", "NAME", map[string]string{
		"MedianHouseholdIncome": "DP03_0062E",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing attribute column")
}
