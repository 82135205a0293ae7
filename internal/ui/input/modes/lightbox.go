package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/types"
)

// LightboxMode is active while the full-size image popup is shown
type LightboxMode struct{}

func NewLightboxMode() *LightboxMode {
	return &LightboxMode{}
}

func (m *LightboxMode) Name() string {
	return "lightbox"
}

func (m *LightboxMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *LightboxMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.CloseLightboxAction{}}
}

func (m *LightboxMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "o":
		return []types.Action{types.OpenURLAction{}}, true
	case "d":
		return []types.Action{types.DownloadAction{}}, true
	case "left", "h", "k", "up":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "right", "l", "j", "down":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	}

	// The popup swallows everything else
	return nil, true
}
