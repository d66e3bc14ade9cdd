package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-news-bot/internal/domain/errors"
	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

func TestParseCallbackPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want models.CallbackPayload
	}{
		{
			name: "выбор источника",
			data: "sub_source_bbc",
			want: models.SelectSourcePayload("bbc"),
		},
		{
			name: "выбор интервала",
			data: "sub_interval_reuters_15",
			want: models.SelectIntervalPayload("reuters", 15),
		},
		{
			name: "источник с подчеркиванием",
			data: "sub_interval_bbc_world_60",
			want: models.SelectIntervalPayload("bbc_world", 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseCallbackPayload(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.data, got.Encode())
		})
	}
}

func TestParseCallbackPayload_Invalid(t *testing.T) {
	for _, data := range []string{
		"",
		"something",
		"sub_source_",
		"sub_interval_bbc",
		"sub_interval_bbc_abc",
		"sub_interval_bbc_0",
		"sub_interval_bbc_-5",
		"sub_interval__15",
	} {
		t.Run(data, func(t *testing.T) {
			_, err := models.ParseCallbackPayload(data)

			var callbackErr *errors.ErrInvalidCallback
			require.ErrorAs(t, err, &callbackErr)
		})
	}
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "1m", models.FormatInterval(1))
	assert.Equal(t, "15m", models.FormatInterval(15))
	assert.Equal(t, "1h", models.FormatInterval(60))
	assert.Equal(t, "90m", models.FormatInterval(90))
	assert.Equal(t, "12h", models.FormatInterval(720))
	assert.Equal(t, "1d", models.FormatInterval(1440))
}

func TestNewMenu(t *testing.T) {
	buttons := []models.MenuButton{{Label: "a"}, {Label: "b"}, {Label: "c"}}

	menu := models.NewMenu(buttons, 2)

	require.Len(t, menu.Rows, 2)
	assert.Len(t, menu.Rows[0], 2)
	assert.Len(t, menu.Rows[1], 1)
}

func TestSourceRegistry(t *testing.T) {
	registry := models.DefaultSourceRegistry()

	id, ok := registry.ProviderID("bbc")
	assert.True(t, ok)
	assert.Equal(t, "bbc-news", id)

	assert.False(t, registry.Has("unknown-source"))
	assert.Equal(t, []string{"bbc", "bloomberg", "kommersant", "reuters"}, registry.Names())
}
