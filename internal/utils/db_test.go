package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConnectionString(t *testing.T) {
	conStr, err := GenerateConnectionString("localhost", "postgres", "secret", "vendors", "disable", 5432, 10, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=vendors sslmode=disable connect_timeout=5 pool_max_conns=10",
		conStr)
}

func TestGenerateConnectionString_Validation(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		password string
		want     error
	}{
		{name: "empty host", host: "", port: 5432, password: "p", want: ErrStorageEmptyHostName},
		{name: "bad port", host: "db", port: 70000, password: "p", want: ErrStorageInvalidPortNumber},
		{name: "empty password", host: "db", port: 5432, password: "", want: ErrStorageEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateConnectionString(tt.host, "postgres", tt.password, "vendors", "disable", tt.port, 0, 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
