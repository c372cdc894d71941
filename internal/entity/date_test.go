package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1990-01-01", "1990-01-01"},
		{"2020-02-29", "2020-02-29"},
		{"2021-1-5", "2021-01-05"},
		{"0001-12-31", "0001-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"2021-02-30",
		"2021-13-01",
		"2021-00-10",
		"2021-04-31",
		"2019-02-29",
		"0000-01-01",
		"2021/01/01",
		"2021-01",
		"2021-01-01-01",
		"2021-01-01T00:00:00",
		"abcd-ef-gh",
		"+2021-01-01",
		"2021--1-01",
		"20210-01-01",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDate(in)
			assert.Error(t, err)
		})
	}
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan([]byte("1990-01-02")))
	assert.Equal(t, MustParseDate("1990-01-02"), d)

	require.NoError(t, d.Scan("1991-03-04 00:00:00"))
	assert.Equal(t, MustParseDate("1991-03-04"), d)

	require.NoError(t, d.Scan(time.Date(1992, time.May, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("1992-05-06"), d)

	require.NoError(t, d.Scan("0000-00-00"))
	assert.True(t, d.IsZero())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := MustParseDate("2000-2-3").Value()
	require.NoError(t, err)
	assert.Equal(t, "2000-02-03", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUserJSONRendersStrings(t *testing.T) {
	user := User{
		ID:        7,
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann.lee@x.com",
		BirthDate: MustParseDate("1990-01-01"),
	}

	b, err := json.Marshal(user)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "7",
		"first_name": "Ann",
		"last_name": "Lee",
		"email": "ann.lee@x.com",
		"birth_date": "1990-01-01"
	}`, string(b))
}
