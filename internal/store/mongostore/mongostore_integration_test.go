//go:build integration

package mongostore

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/storetest"
)

var mongoURI string

// TestMain starts a single-node replica set so transactions are available.
func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Printf("Failed to start mongo container: %v\n", err)
		os.Exit(1)
	}

	code, _, err := container.Exec(ctx, []string{"mongosh", "--quiet", "--eval",
		`rs.initiate({_id: "rs0", members: [{_id: 0, host: "localhost:27017"}]})`})
	if err != nil || code != 0 {
		fmt.Printf("Failed to initiate replica set: code=%d err=%v\n", code, err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017")
	mongoURI = fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port())

	exit := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate mongo container: %v\n", err)
	}
	os.Exit(exit)
}

func makeMongoStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	db := "enw_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")

	var (
		s   *Store
		err error
	)
	// The replica set needs a moment to elect a primary after rs.initiate.
	for i := 0; i < 30; i++ {
		s, err = Open(ctx, Config{URI: mongoURI, Database: db, ConnectTimeout: 5 * time.Second})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Fatalf("open mongo store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestMongoStore_Compliance(t *testing.T) {
	storetest.Run(t, makeMongoStore)
}
