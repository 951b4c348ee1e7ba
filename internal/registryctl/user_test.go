package registryctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAdd_RequiresEmailAndUsername(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		t.Fatal("must not prompt before flag validation")
		return nil, nil
	}

	emailFlag, usernameFlag = "", ""
	err := userAddCmd.RunE(userAddCmd, nil)

	assert.EqualError(t, err, "email and username are required")
}

func TestUserAdd_RejectsEmptyPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte(""), nil
	}

	emailFlag, usernameFlag = "alice@example.com", "alice"
	defer func() { emailFlag, usernameFlag = "", "" }()
	err := userAddCmd.RunE(userAddCmd, nil)

	assert.EqualError(t, err, "password must not be empty")
}
