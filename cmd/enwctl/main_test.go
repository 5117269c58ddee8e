package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ENW_BACK-END/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHashKey(t *testing.T) {
	out, err := run(t, "hash-key", "s3cret")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestHashKey_RequiresArgument(t *testing.T) {
	_, err := run(t, "hash-key")
	assert.Error(t, err)
}

func TestToken_RequiresSubject(t *testing.T) {
	_, err := run(t, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject")
}

func TestSeedBlog_MemoryDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("NODE_ENV", "test")
	out, err := run(t, "--driver", "memory", "seed", "blog")
	require.NoError(t, err)
	assert.Contains(t, out, "categories:")
	assert.Contains(t, out, "posts:")
}

func TestPrintDuplicates(t *testing.T) {
	cmd := newDuplicatesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	printDuplicates(cmd, store.CollVolunteers, nil)
	assert.Equal(t, "no duplicate emails in volunteers\n", out.String())

	out.Reset()
	printDuplicates(cmd, store.CollVolunteers, []store.DuplicateGroup{{Email: "a@b.co", Count: 2, IDs: []string{"1", "2"}}})
	assert.Contains(t, out.String(), "a@b.co")
	assert.Contains(t, out.String(), "EMAIL")
}

func TestPrintIndexes(t *testing.T) {
	cmd := newIndexesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	printIndexes(cmd, []store.IndexInfo{{Collection: "volunteers", Name: "email_1", Keys: "email", Unique: true}})
	assert.Contains(t, out.String(), "email_1")
	assert.Contains(t, out.String(), "true")
}
