package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoLocationJSON_ValueScan(t *testing.T) {
	in := GeoLocationJSON{Country: "Spain", City: "Madrid", Lat: 40.41, Lon: -3.70, ISP: "Telefonica"}
	raw, err := in.Value()
	require.NoError(t, err)

	var out GeoLocationJSON
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(`{"country":"France"}`))
	assert.Equal(t, "France", out.Country)

	assert.Error(t, out.Scan(42))
}

func TestTagsJSON_NilRoundTrip(t *testing.T) {
	var tags TagsJSON
	raw, err := tags.Value()
	require.NoError(t, err)
	assert.Nil(t, raw)

	require.NoError(t, tags.Scan([]byte(`["ai","crawlers"]`)))
	assert.Equal(t, TagsJSON{"ai", "crawlers"}, tags)
}
