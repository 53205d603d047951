package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type imaginifyContainer struct {
	testcontainers.Container
	URI string
}

func setupImaginify(ctx context.Context, t *testing.T) (*imaginifyContainer, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "test-secret"
	}

	adminUsers := os.Getenv("ADMIN_USERS")
	if adminUsers == "" {
		adminUsers = "user_admin"
	}

	natPort := nat.Port(port + "/tcp")

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    "../",
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{string(natPort)},
		Env: map[string]string{
			"PORT":         port,
			"GIN_MODE":     "release",
			"DATABASE_URL": "sqlite::memory:",
			"JWT_SECRET":   jwtSecret,
			"ADMIN_USERS":  adminUsers,
			"TEST_MODE":    "true",
		},
		WaitingFor: wait.ForHTTP("/api/v1/total").
			WithPort(natPort).
			WithStatusCodeMatcher(func(status int) bool {
				return status == 200
			}).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	var imaginifyC *imaginifyContainer
	if container != nil {
		imaginifyC = &imaginifyContainer{Container: container}
	}
	if err != nil {
		return imaginifyC, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return imaginifyC, err
	}

	mappedPort, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return imaginifyC, err
	}

	imaginifyC.URI = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return imaginifyC, nil
}

func ensureUserExists(t *testing.T, baseURL, clerkID, username string) {
	payload := fmt.Sprintf(`{
		"type": "user.created",
		"data": {
			"id": %q,
			"username": %q,
			"email_addresses": [{"email_address": "%s@example.com"}]
		}
	}`, clerkID, username, username)

	resp, err := http.Post(baseURL+"/api/v1/webhooks/clerk", "application/json", strings.NewReader(payload))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Logf("ensureUserExists for %s failed: status=%d, body=%s", username, resp.StatusCode, string(body))
	}
	require.Equal(t, http.StatusOK, resp.StatusCode, "user should be created")
}

func doTestRequest(t *testing.T, method, url, clerkID string, body io.Reader) (*http.Response, []byte) {
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-Clerk-ID", clerkID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, respBody
}

func getBalance(t *testing.T, baseURL, clerkID string) float64 {
	resp, body := doTestRequest(t, http.MethodGet, baseURL+"/api/v1/credits", clerkID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "balance request failed: %s", string(body))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))

	balance, ok := result["credit_balance"].(float64)
	require.True(t, ok, "credit_balance should be a number")
	return balance
}

func TestE2E_TotalCredits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	resp, err := http.Get(imaginifyC.URI + "/api/v1/total")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err)

	totalCredits, ok := result["total_credits"].(float64)
	assert.True(t, ok, "total_credits should be a number")
	assert.GreaterOrEqual(t, totalCredits, 0.0, "total_credits should be >= 0")
}

func TestE2E_NewUserStartsWithFreeCredits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_alice", "alice")

	resp, body := doTestRequest(t, http.MethodGet, imaginifyC.URI+"/api/v1/me", "user_alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "profile request failed: %s", string(body))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, "alice", result["username"].(string))
	assert.Equal(t, 10.0, result["credit_balance"].(float64), "new user should start with 10 credits")
}

func TestE2E_StripeWebhookGrantsCredits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_buyer", "buyer")
	initialBalance := getBalance(t, imaginifyC.URI, "user_buyer")

	payload := `{
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_e2e_1",
				"payment_status": "paid",
				"status": "complete",
				"amount_total": 4000,
				"client_reference_id": "user_buyer",
				"metadata": {"plan": "Pro Package", "credits": "120", "buyerId": "user_buyer"}
			}
		}
	}`

	resp, err := http.Post(imaginifyC.URI+"/api/v1/webhooks/stripe", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "webhook failed: %s", string(body))

	assert.Equal(t, initialBalance+120.0, getBalance(t, imaginifyC.URI, "user_buyer"))

	t.Run("duplicate delivery is acknowledged without double-granting", func(t *testing.T) {
		resp, err := http.Post(imaginifyC.URI+"/api/v1/webhooks/stripe", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Equal(t, initialBalance+120.0, getBalance(t, imaginifyC.URI, "user_buyer"))
	})

	t.Run("purchase appears in transaction history", func(t *testing.T) {
		resp, body := doTestRequest(t, http.MethodGet, imaginifyC.URI+"/api/v1/transactions", "user_buyer", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var transactions []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &transactions))
		require.Len(t, transactions, 1)
		assert.Equal(t, "Pro Package", transactions[0]["plan"].(string))
		assert.Equal(t, 120.0, transactions[0]["credits"].(float64))
		assert.Equal(t, 40.0, transactions[0]["amount"].(float64))
	})
}

func TestE2E_TransformationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_artist", "artist")
	initialBalance := getBalance(t, imaginifyC.URI, "user_artist")

	startBody := strings.NewReader(`{
		"type": "fillBackground",
		"public_id": "samples/landscape",
		"aspect_ratio": "1:1"
	}`)
	resp, body := doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/transformations", "user_artist", startBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "start session failed: %s", string(body))

	var startResult map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &startResult))
	sessionID, ok := startResult["session_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, sessionID)

	stageBody := strings.NewReader(`{"field": "prompt", "value": "a sunset over mountains"}`)
	resp, body = doTestRequest(t, http.MethodPatch, imaginifyC.URI+"/api/v1/transformations/"+sessionID+"/config", "user_artist", stageBody)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, "stage failed: %s", string(body))

	resp, body = doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/transformations/"+sessionID+"/apply", "user_artist", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "apply failed: %s", string(body))

	var applyResult map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &applyResult))

	assert.NotEmpty(t, applyResult["transformation_url"].(string))
	assert.Equal(t, initialBalance-1.0, applyResult["credit_balance"].(float64), "apply should cost one credit")

	t.Run("apply with nothing staged is rejected", func(t *testing.T) {
		resp, _ := doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/transformations/"+sessionID+"/apply", "user_artist", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("session is owner-scoped", func(t *testing.T) {
		ensureUserExists(t, imaginifyC.URI, "user_other", "other")
		resp, _ := doTestRequest(t, http.MethodDelete, imaginifyC.URI+"/api/v1/transformations/"+sessionID, "user_other", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestE2E_TokenAuthentication(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_token", "tokenuser")

	resp, body := doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/tokens", "user_token",
		strings.NewReader(`{"expires_in": "1h"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create token failed: %s", string(body))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	token, ok := result["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	t.Run("token lists under user", func(t *testing.T) {
		resp, body := doTestRequest(t, http.MethodGet, imaginifyC.URI+"/api/v1/tokens", "user_token", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tokens []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &tokens))
		assert.Len(t, tokens, 1)
	})
}

func TestE2E_GiftLinkFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_sender", "sender")
	ensureUserExists(t, imaginifyC.URI, "user_receiver", "receiver")

	resp, body := doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/giftlinks", "user_sender",
		strings.NewReader(`{"credits": 5, "message": "enjoy", "expires_in": "24h"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode, "create gift link failed: %s", string(body))

	var giftLink map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &giftLink))
	code, ok := giftLink["code"].(string)
	require.True(t, ok)
	require.NotEmpty(t, code)

	assert.Equal(t, 5.0, getBalance(t, imaginifyC.URI, "user_sender"), "credits should be escrowed on creation")

	redeemBody := fmt.Sprintf(`{"code": %q}`, code)
	resp, body = doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/gift/redeem", "user_receiver",
		strings.NewReader(redeemBody))
	require.Equal(t, http.StatusOK, resp.StatusCode, "redeem failed: %s", string(body))

	assert.Equal(t, 15.0, getBalance(t, imaginifyC.URI, "user_receiver"))

	t.Run("redeeming twice is rejected", func(t *testing.T) {
		resp, _ := doTestRequest(t, http.MethodPost, imaginifyC.URI+"/api/v1/gift/redeem", "user_receiver",
			strings.NewReader(redeemBody))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestE2E_AdminEndpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	imaginifyC, err := setupImaginify(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, imaginifyC)

	ensureUserExists(t, imaginifyC.URI, "user_admin", "admin")
	ensureUserExists(t, imaginifyC.URI, "user_member", "member")

	t.Run("admin can list users", func(t *testing.T) {
		resp, body := doTestRequest(t, http.MethodGet, imaginifyC.URI+"/api/v1/admin/users", "user_admin", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "list users failed: %s", string(body))

		var users []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &users))
		assert.GreaterOrEqual(t, len(users), 2)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		resp, _ := doTestRequest(t, http.MethodGet, imaginifyC.URI+"/api/v1/admin/users", "user_member", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin can set a balance", func(t *testing.T) {
		resp, body := doTestRequest(t, http.MethodPut, imaginifyC.URI+"/api/v1/admin/credits/member", "user_admin",
			strings.NewReader(`{"credit_balance": 500}`))
		require.Equal(t, http.StatusOK, resp.StatusCode, "set balance failed: %s", string(body))

		assert.Equal(t, 500.0, getBalance(t, imaginifyC.URI, "user_member"))
	})
}
