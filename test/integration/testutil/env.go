//go:build integration

package testutil

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"fullmoon/pkg/client"
	"fullmoon/pkg/config"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// TestEnv points the suite at a running hotel service. The service should
// run with RATE_LIMIT_REQUESTS raised well above the default, since every
// test issues writes from the same address.
type TestEnv struct {
	MongoURI      string
	DatabaseName  string
	ServerURL     string
	AdminEmail    string
	AdminPassword string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", config.DefaultPort)

	return &TestEnv{
		MongoURI:      getEnv("TEST_MONGO_URI", config.DefaultMongoURI),
		DatabaseName:  getEnv("TEST_DB_NAME", config.DefaultMongoDatabaseName),
		ServerURL:     getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
		AdminEmail:    getEnv("TEST_ADMIN_EMAIL", config.DefaultAdminEmail),
		AdminPassword: os.Getenv("TEST_ADMIN_PASSWORD"),
	}
}

// Setup cleans the database and returns a client signed in as the admin.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *client.HotelClient) {
	t.Helper()

	if e.AdminPassword == "" {
		t.Skip("TEST_ADMIN_PASSWORD not set")
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	hotel := client.NewHotelClient(e.ServerURL)
	if err := hotel.HTTP().WaitForHealthy(DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server not healthy: %v", err)
	}

	resp, err := hotel.Login(e.AdminEmail, e.AdminPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	AssertStatusCode(t, resp, 200)

	return mongo, hotel
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

func AssertErrorCode(t *testing.T, resp *client.Response, expected string) {
	t.Helper()
	var apiErr *client.APIError
	if !errors.As(resp.Err(), &apiErr) {
		t.Fatalf("expected error %s, got status %d", expected, resp.StatusCode)
	}
	if apiErr.Code != expected {
		t.Fatalf("expected error code %s, got %v", expected, apiErr)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
