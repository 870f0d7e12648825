package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	day := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "RCP-20240305-00000042", formatNumber(day, 42))
	assert.Equal(t, "RCP-20240305-123456789", formatNumber(day, 123456789))
}
