package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/admin-api/internal/models"
)

func TestUniversityFlow_CreateAndFetch(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth("POST", "/universities", token, map[string]interface{}{
		"reg_number": "reg-2024-001",
		"name":       "Central State University",
		"email":      "Contact@Central.EDU",
		"type":       "public",
		"estd":       1962,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &created))
	assert.Equal(t, "reg-2024-001", created["reg_number"])
	assert.Equal(t, "approved", created["status"])

	resp, err = ts.RequestWithAuth("GET", "/universities/reg-2024-001", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &fetched))
	assert.Equal(t, "Central State University", fetched["name"])
	assert.Equal(t, "contact@central.edu", fetched["email"])
}

func TestUniversityFlow_DuplicateRegNumber(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedUniversity(ctx, testDB.Pool, "reg-dup-1", "Original", "original@dup.edu", models.UniStatusApproved)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth("POST", "/universities", token, map[string]interface{}{
		"reg_number": "reg-dup-1",
		"name":       "Copycat",
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUniversityFlow_UpdateLifecycle(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedUniversity(ctx, testDB.Pool, "reg-upd-1", "Old Name", "old@upd.edu", models.UniStatusUpdating)
	require.NoError(t, err)
	_, err = SeedUniversity(ctx, testDB.Pool, "reg-upd-2", "Neighbor", "taken@upd.edu", models.UniStatusApproved)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	// Registration numbers are immutable
	resp, err := ts.RequestWithAuth("PUT", "/universities/reg-upd-1", token, map[string]interface{}{
		"reg_number": "reg-changed",
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Another university's email cannot be claimed
	resp, err = ts.RequestWithAuth("PUT", "/universities/reg-upd-1", token, map[string]interface{}{
		"email": "taken@upd.edu",
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A valid partial update merges fields and approves an updating entry
	resp, err = ts.RequestWithAuth("PUT", "/universities/reg-upd-1", token, map[string]interface{}{
		"name":     "New Name",
		"location": "Springfield",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &updated))
	assert.Equal(t, "New Name", updated["name"])
	assert.Equal(t, "Springfield", updated["location"])
	assert.Equal(t, "old@upd.edu", updated["email"])
	assert.Equal(t, "approved", updated["status"])
}

func TestUniversityFlow_RequestDecision(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedUniversity(ctx, testDB.Pool, "reg-req-1", "Hopeful College", "hopeful@req.edu", models.UniStatusPending)
	require.NoError(t, err)
	_, err = SeedUniversity(ctx, testDB.Pool, "reg-req-2", "Settled University", "settled@req.edu", models.UniStatusApproved)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	// Only pending entries show up under requests
	resp, err := ts.RequestWithAuth("GET", "/universities/requests", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Universities []map[string]interface{} `json:"universities"`
		Total        int64                    `json:"total"`
	}
	require.NoError(t, ParseJSONResponse(resp, &list))
	require.Len(t, list.Universities, 1)
	assert.Equal(t, "reg-req-1", list.Universities[0]["reg_number"])

	// Approving the request flips it to approved
	resp, err = ts.RequestWithAuth("PATCH", "/universities/reg-req-1/status", token, map[string]string{
		"status": "approved",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decided map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &decided))
	assert.Equal(t, "approved", decided["status"])

	// Deciding a non-pending entry is refused
	resp, err = ts.RequestWithAuth("PATCH", "/universities/reg-req-2/status", token, map[string]string{
		"status": "rejected",
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUniversityFlow_BlockToggle(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedUniversity(ctx, testDB.Pool, "reg-blk-1", "Blockable University", "blk@blk.edu", models.UniStatusApproved)
	require.NoError(t, err)
	_, err = SeedUniversity(ctx, testDB.Pool, "reg-blk-2", "Pending College", "pend@blk.edu", models.UniStatusPending)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth("PATCH", "/universities/reg-blk-1/block", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var blocked map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &blocked))
	assert.Equal(t, "blocked", blocked["status"])

	// Toggling again restores the approved status
	resp, err = ts.RequestWithAuth("PATCH", "/universities/reg-blk-1/block", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var unblocked map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &unblocked))
	assert.Equal(t, "approved", unblocked["status"])

	// A pending entry cannot be blocked
	resp, err = ts.RequestWithAuth("PATCH", "/universities/reg-blk-2/block", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUniversityFlow_Delete(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedUniversity(ctx, testDB.Pool, "reg-del-1", "Short Lived", "del@del.edu", models.UniStatusApproved)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth("DELETE", "/universities/reg-del-1", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = ts.RequestWithAuth("GET", "/universities/reg-del-1", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = ts.RequestWithAuth("DELETE", "/universities/reg-del-1", token, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardFlow_Stats(t *testing.T) {
	resetTables(t)

	ts := NewTestServer(testDB.DB)
	defer ts.Close()

	ctx := context.Background()
	_, err := SeedStudent(ctx, testDB.DB, "s1@stats.edu", "One", true, false, false)
	require.NoError(t, err)
	_, err = SeedStudent(ctx, testDB.DB, "s2@stats.edu", "Two", false, true, false)
	require.NoError(t, err)
	_, err = SeedStudent(ctx, testDB.DB, "s3@stats.edu", "Three", false, false, true)
	require.NoError(t, err)
	_, err = SeedUniversity(ctx, testDB.Pool, "reg-st-1", "Stat University", "u1@stats.edu", models.UniStatusApproved)
	require.NoError(t, err)
	_, err = SeedUniversity(ctx, testDB.Pool, "reg-st-2", "Stat College", "u2@stats.edu", models.UniStatusPending)
	require.NoError(t, err)

	token, err := ts.AccessTokenFor("admin123", "admin@example.com")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth("GET", "/dashboard/stats", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &stats))
	assert.Equal(t, float64(3), stats["total_students"])
	assert.Equal(t, float64(1), stats["moderators"])
	assert.Equal(t, float64(1), stats["pending_mod_requests"])
	assert.Equal(t, float64(1), stats["banned_students"])
	assert.Equal(t, float64(2), stats["total_universities"])
	assert.Equal(t, float64(1), stats["pending_uni_requests"])
}
