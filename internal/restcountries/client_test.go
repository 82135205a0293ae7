package restcountries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJSON = `[{"name":{"common":"France","official":"French Republic"},
	"capital":["Paris"],"region":"Europe","population":67391582,"flag":"🇫🇷",
	"flags":{"png":"https://flagcdn.com/w320/fr.png"},
	"languages":{"fra":"French"}}]`

func TestByNameBuildsPathAndDecodes(t *testing.T) {
	var gotPath, gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotFields = r.URL.Query().Get("fields")
		_, _ = w.Write([]byte(franceJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", []string{"name", "capital"}, 5*time.Second, 6000)
	countries, err := c.ByName(context.Background(), "fr")
	require.NoError(t, err)

	assert.Equal(t, "/name/fr", gotPath)
	assert.Equal(t, "name,capital", gotFields)
	require.Len(t, countries, 1)
	assert.Equal(t, "France", countries[0].Name)
	assert.Equal(t, "French Republic", countries[0].Official)
	assert.Equal(t, []string{"Paris"}, countries[0].Capital)
	assert.Equal(t, []string{"French"}, countries[0].Languages)
	assert.Equal(t, "https://flagcdn.com/w320/fr.png", countries[0].FlagURL)
}

func TestNameURLEscapesFragment(t *testing.T) {
	c := NewClient("https://example.com/v3.1", nil, time.Second, 60)
	u, err := c.NameURL("united states")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v3.1/name/united%20states", u)
}

func TestByNameNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"message":"Not Found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil, time.Second, 6000).ByName(context.Background(), "zz")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestByNameServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil, time.Second, 6000).ByName(context.Background(), "fr")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
}
