package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
)

func TestRun_HashKeyFromStdin(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"hash-key"}, strings.NewReader("secret-key\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	hash := strings.TrimSpace(out.String())
	ok, err := argon2id.ComparePasswordAndHash("secret-key", hash)
	if err != nil || !ok {
		t.Fatalf("hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRun_HashKeyRejectsEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"hash-key"}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"nope"}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error")
	}
	if err := run(nil, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected usage error")
	}
}
