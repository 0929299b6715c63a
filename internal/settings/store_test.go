package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamzrod/jackdaw/internal/settings"
	"github.com/tamzrod/jackdaw/internal/settings/settingstest"
)

func TestMemoryStore_Contract(t *testing.T) {
	settingstest.RunStoreContract(t, settings.NewMemoryStore())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "E8", settings.KeyEUI64.String())
	assert.Equal(t, "CH", settings.KeyChannel.String())
	assert.Equal(t, "0x0001", settings.Key(1).String())
}
