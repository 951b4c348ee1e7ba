package registryctl

import (
	"errors"
	"testing"
)

func TestPromptPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("hunter2"), nil
	}
	got, err := promptPassword("Password: ")
	if err != nil || string(got) != "hunter2" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestPromptPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	if _, err := promptPassword("Password: "); err == nil {
		t.Fatal("expected error")
	}
}
