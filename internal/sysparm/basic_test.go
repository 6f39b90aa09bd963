package sysparm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snquery/snquery/internal/queryir"
)

func TestBasic_Encode(t *testing.T) {
	testCases := []struct {
		name  string
		basic Basic
		want  string
	}{
		{
			name: "exact match with explicit order",
			basic: Basic{
				OrderBy:    "opened_at",
				MatchExact: []Match{{Field: "state", Value: "1"}},
			},
			want: "ORDERBYDESCopened_at^state=1",
		},
		{
			name:  "defaults only",
			basic: Basic{},
			want:  "ORDERBYDESCopened_at",
		},
		{
			name:  "ascending order",
			basic: Basic{OrderBy: "number", Direction: queryir.Asc},
			want:  "ORDERBYnumber",
		},
		{
			name: "contains match uses LIKE",
			basic: Basic{
				MatchContains: []Match{{Field: "short_description", Value: "powershell"}},
			},
			want: "ORDERBYDESCopened_at^short_descriptionLIKEpowershell",
		},
		{
			name: "field names lowercased",
			basic: Basic{
				MatchExact: []Match{{Field: "State", Value: "1"}},
			},
			want: "ORDERBYDESCopened_at^state=1",
		},
		{
			name: "exact before contains, pair order preserved",
			basic: Basic{
				OrderBy: "opened_at",
				MatchExact: []Match{
					{Field: "state", Value: "1"},
					{Field: "priority", Value: "2"},
				},
				MatchContains: []Match{{Field: "short_description", Value: "vpn"}},
			},
			want: "ORDERBYDESCopened_at^state=1^priority=2^short_descriptionLIKEvpn",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.basic.Encode())
		})
	}
}

func TestMatchesFromMap_SortedByField(t *testing.T) {
	matches := MatchesFromMap(map[string]string{
		"priority": "2",
		"state":    "1",
		"category": "network",
	})

	assert.Equal(t, []Match{
		{Field: "category", Value: "network"},
		{Field: "priority", Value: "2"},
		{Field: "state", Value: "1"},
	}, matches)
}

func TestMatchesFromMap_Deterministic(t *testing.T) {
	m := map[string]string{"b": "2", "a": "1", "c": "3", "d": "4"}

	first := Basic{MatchExact: MatchesFromMap(m)}.Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Basic{MatchExact: MatchesFromMap(m)}.Encode())
	}
}

func TestMatchesFromMap_Empty(t *testing.T) {
	assert.Empty(t, MatchesFromMap(nil))
	assert.Empty(t, MatchesFromMap(map[string]string{}))
}
