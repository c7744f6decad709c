package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	count, err := Validate("../../migrations")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestValidateEmptyDir(t *testing.T) {
	_, err := Validate(t.TempDir())
	assert.Error(t, err)
}

func TestRunRequiresDB(t *testing.T) {
	err := Run(context.Background(), nil, DefaultDir, "up")
	assert.EqualError(t, err, "db is required")
}
