package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	tests := []struct {
		want Theme
		name string
	}{
		{name: "catppuccin-mocha", want: CatppuccinMocha},
		{name: "default", want: Default},
		{name: "", want: Default},
		{name: "solarized", want: Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetTheme(tt.name)
			assert.Equal(t, tt.want.Primary, got.Primary)
			assert.Equal(t, tt.want.Border, got.Border)
		})
	}
}

func TestNewTheme_DerivesStylesFromPalette(t *testing.T) {
	p := palette{primary: "#111111", onPrimary: "#222222", border: "#333333", warning: "#444444", muted: "#555555"}
	th := newTheme(p)

	assert.Equal(t, p.primary, th.Selected.GetBackground())
	assert.Equal(t, p.onPrimary, th.Selected.GetForeground())
	assert.Equal(t, p.border, th.BorderedBox.GetBorderTopForeground())
	assert.Equal(t, p.warning, th.StatusWarning.GetForeground())
	assert.True(t, th.StatusWarning.GetBold())
	assert.True(t, th.StatusPending.GetItalic())
	assert.Equal(t, p.muted, th.Muted)
}
