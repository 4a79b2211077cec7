//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/dto"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/presentation/rest"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/testutil"
)

var riskdURL string

func TestMain(m *testing.M) {
	riskdURL = os.Getenv("RISKD_URL")
	if riskdURL == "" {
		riskdURL = "http://localhost:9090"
	}

	// Wait for the daemon to be ready
	for i := 0; i < 30; i++ {
		resp, err := http.Get(riskdURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}

	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(riskdURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body rest.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
}

func TestMetricsExposed(t *testing.T) {
	postLedger(t, testutil.ScenarioCSV())

	resp, err := http.Get(riskdURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "risk_rows_scored_total")
}

func TestAssessmentFlow(t *testing.T) {
	resp := postLedger(t, testutil.ScenarioCSV())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get(rest.HeaderTransactions))
	assert.NotEmpty(t, resp.Header.Get(rest.HeaderRequestID))

	runID := resp.Header.Get(rest.HeaderRunID)
	require.NotEmpty(t, runID)

	got, err := http.Get(riskdURL + "/v1/runs/" + runID)
	require.NoError(t, err)
	defer got.Body.Close()
	if got.StatusCode == http.StatusNotFound || got.StatusCode == http.StatusMethodNotAllowed {
		t.Skip("daemon runs without persistence")
	}
	require.Equal(t, http.StatusOK, got.StatusCode)

	var details dto.RunDetails
	require.NoError(t, json.NewDecoder(got.Body).Decode(&details))
	assert.Equal(t, 5, details.Run.TotalTransactions)
	assert.Len(t, details.Accounts, 2)
}

func TestAssessmentRejectsBadInput(t *testing.T) {
	resp := postLedger(t, "step,amount\n1,10\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func postLedger(t *testing.T, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(riskdURL+"/v1/assessments", "text/csv", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
