package database_test

import (
	"testing"

	"content-admin/database"

	"github.com/alicebob/miniredis/v2"
)

func TestConnectRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		rdb, err := database.ConnectRedis(addr)
		if err != nil {
			t.Fatalf("%s: expected connection, got %v", addr, err)
		}
		rdb.Close()
	}
}

func TestConnectRedisInvalidURL(t *testing.T) {
	if _, err := database.ConnectRedis("http://localhost:6379"); err == nil {
		t.Error("expected error for a non-redis scheme")
	}
}

func TestConnectRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := database.ConnectRedis(addr); err == nil {
		t.Error("expected error for stopped server")
	}
}
