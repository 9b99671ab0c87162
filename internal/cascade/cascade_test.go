package cascade

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

var cities = []lookup.City{
	{ID: 1, Name: "Bandung", ProvinceID: 10, ProvinceName: "Jawa Barat", CountryID: 62, CountryName: "Indonesia"},
	{ID: 2, Name: "Surabaya", ProvinceID: 11, ProvinceName: "Jawa Timur", CountryID: 62, CountryName: "Indonesia"},
}

var provinces = []lookup.Province{
	{ID: 10, Name: "Jawa Barat", CountryID: 62, CountryName: "Indonesia"},
	{ID: 20, Name: "Selangor", CountryID: 60},
}

var countries = []lookup.Country{
	{ID: 60, Name: "Malaysia"},
	{ID: 62, Name: "Indonesia"},
}

var places = Places{Cities: cities, Provinces: provinces, Countries: countries}

var channels = []lookup.Channel{
	{ID: 3, Name: "Tokopedia", Initial: "TKP", Category: "Marketplace"},
	{ID: 4, Name: "Offline", Initial: "", Category: "Retail"},
}

func TestResolveCityKnownID(t *testing.T) {
	for _, c := range cities {
		patch := ResolveCity(itoa(c.ID), places)
		assert.NotEmpty(t, patch.ProvinceName)
		assert.NotEmpty(t, patch.CountryName)
	}
	assert.Equal(t, CityPatch{ProvinceID: "11", ProvinceName: "Jawa Timur", CountryID: "62", CountryName: "Indonesia"}, ResolveCity(" 2 ", places))
}

func TestResolveCityJoinsProvinceAndCountry(t *testing.T) {
	bare := Places{Cities: []lookup.City{{ID: 5, ProvinceID: 10, CountryID: 62}}, Provinces: provinces, Countries: countries}
	assert.Equal(t, CityPatch{ProvinceID: "10", ProvinceName: "Jawa Barat", CountryID: "62", CountryName: "Indonesia"}, ResolveCity("5", bare))

	// Country id missing on the city row comes from its province.
	viaProvince := Places{Cities: []lookup.City{{ID: 6, ProvinceID: 20}}, Provinces: provinces, Countries: countries}
	assert.Equal(t, CityPatch{ProvinceID: "20", ProvinceName: "Selangor", CountryID: "60", CountryName: "Malaysia"}, ResolveCity("6", viaProvince))

	orphan := Places{Cities: []lookup.City{{ID: 7, ProvinceID: 99, CountryID: 1}}, Provinces: provinces, Countries: countries}
	assert.Equal(t, CityPatch{ProvinceID: "99", CountryID: "1"}, ResolveCity("7", orphan))
}

func TestResolveCityUnknownID(t *testing.T) {
	for _, id := range []string{"99", "", "abc", "-1"} {
		assert.Equal(t, CityPatch{}, ResolveCity(id, places), id)
	}
	assert.Equal(t, CityPatch{}, ResolveCity("1", Places{}))
}

func TestResolveChannel(t *testing.T) {
	cases := []struct {
		name string
		id   string
		sku  string
		want ChannelPatch
	}{
		{"with sku", "3", "A100", ChannelPatch{InitialChannel: "TKP", CategoryFromChannel: "Marketplace", SKUCodeEcommerce: "TKP-A100"}},
		{"without sku", "3", "", ChannelPatch{InitialChannel: "TKP", CategoryFromChannel: "Marketplace"}},
		{"without initial", "4", "A100", ChannelPatch{CategoryFromChannel: "Retail"}},
		{"unknown", "7", "A100", ChannelPatch{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveChannel(tc.id, tc.sku, channels))
		})
	}
}

type stubLookups struct {
	cities []lookup.City
	err    error
}

func (s stubLookups) Cities(context.Context) ([]lookup.City, error) {
	if s.cities != nil {
		return s.cities, s.err
	}
	return cities, s.err
}
func (s stubLookups) Provinces(context.Context) ([]lookup.Province, error) { return provinces, s.err }
func (s stubLookups) Countries(context.Context) ([]lookup.Country, error)   { return countries, s.err }
func (s stubLookups) Channels(context.Context) ([]lookup.Channel, error) { return channels, s.err }

func serve(t *testing.T, lookups Lookups, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Route("/cascade", NewHandler(nil, lookups).MountRoutes)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandlerCity(t *testing.T) {
	rr := serve(t, stubLookups{}, "/cascade/cities/1")
	require.Equal(t, http.StatusOK, rr.Code)

	var patch map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patch))
	assert.Equal(t, "Jawa Barat", patch["ProvinceName"])
	assert.Equal(t, "62", patch["CountryId"])
}

func TestHandlerCityFillsNamesFromParents(t *testing.T) {
	rr := serve(t, stubLookups{cities: []lookup.City{{ID: 5, Name: "Bekasi", ProvinceID: 10, CountryID: 62}}}, "/cascade/cities/5")
	require.Equal(t, http.StatusOK, rr.Code)

	var patch CityPatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patch))
	assert.Equal(t, "Jawa Barat", patch.ProvinceName)
	assert.Equal(t, "Indonesia", patch.CountryName)
}

func TestHandlerChannelUsesSKUQuery(t *testing.T) {
	rr := serve(t, stubLookups{}, "/cascade/channels/3?sku=B7")
	require.Equal(t, http.StatusOK, rr.Code)

	var patch ChannelPatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patch))
	assert.Equal(t, "TKP-B7", patch.SKUCodeEcommerce)
}

func TestHandlerLookupFailure(t *testing.T) {
	rr := serve(t, stubLookups{err: errors.New("down")}, "/cascade/cities/1")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestLocationResolve(t *testing.T) {
	stale := Location{CityID: 2, ProvinceName: "Jawa Barat", CountryName: "Malaysia"}
	got := stale.Resolve(places)
	assert.Equal(t, Location{CityID: 2, CityName: "Surabaya", ProvinceID: 11, ProvinceName: "Jawa Timur", CountryID: 62, CountryName: "Indonesia"}, got)

	unknown := Location{CityID: 99, ProvinceName: "stale"}.Resolve(places)
	assert.Equal(t, Location{CityID: 99}, unknown)

	bare := Places{Cities: []lookup.City{{ID: 5, Name: "Bekasi", ProvinceID: 10, CountryID: 62}}, Provinces: provinces, Countries: countries}
	assert.Equal(t, Location{CityID: 5, CityName: "Bekasi", ProvinceID: 10, ProvinceName: "Jawa Barat", CountryID: 62, CountryName: "Indonesia"}, Location{CityID: 5}.Resolve(bare))
}

func TestChannelResolve(t *testing.T) {
	got := Channel{ChannelID: 3, SKUCodeEcommerce: "OLD-1"}.Resolve("A100", channels)
	assert.Equal(t, Channel{ChannelID: 3, InitialChannel: "TKP", CategoryFromChannel: "Marketplace", SKUCodeEcommerce: "TKP-A100"}, got)
	assert.Equal(t, Channel{ChannelID: 8}, Channel{ChannelID: 8, InitialChannel: "X"}.Resolve("A", channels))
}
