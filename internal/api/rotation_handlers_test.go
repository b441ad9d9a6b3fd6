package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditOfTheDay_EmptyCatalog(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/edit-of-the-day")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "INTERNAL", apiErr.Code)
}

func TestEditOfTheDay_StableAcrossRequests(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "creator@example.com")

	for i := range 5 {
		ts.createEdit(t, token, "Candidate "+string(rune('A'+i)), 5)
	}

	resp := ts.api.Get("/api/v1/edit-of-the-day")
	require.Equal(t, http.StatusOK, resp.Code)

	var first EditResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))
	require.NotEmpty(t, first.ID)

	for range 5 {
		resp = ts.api.Get("/api/v1/edit-of-the-day")
		require.Equal(t, http.StatusOK, resp.Code)

		var again EditResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &again))
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestEditOfTheDay_SurvivesCatalogGrowth(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "creator@example.com")

	ts.createEdit(t, token, "Early bird", 5)

	resp := ts.api.Get("/api/v1/edit-of-the-day")
	require.Equal(t, http.StatusOK, resp.Code)

	var first EditResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))

	// New submissions do not change today's pick.
	ts.createEdit(t, token, "Latecomer", 5)

	resp = ts.api.Get("/api/v1/edit-of-the-day")
	require.Equal(t, http.StatusOK, resp.Code)

	var again EditResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &again))
	assert.Equal(t, first.ID, again.ID)
}
