package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/domain"
	"lookout/internal/ui/input/types"
)

// NormalMode moves through the rendered results
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyCtrlL:
		return []types.Action{types.ClearAction{}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchTabAction{}}, true

	case tea.KeyEsc:
		if ctx.ChipIndex() >= 0 {
			return []types.Action{types.ChipNavigateAction{Direction: "none"}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.ActiveTab() != domain.WidgetGallery {
			return nil, false
		}
		// A focused chip wins over the selected card
		if ctx.ChipIndex() >= 0 {
			return []types.Action{types.RunChipAction{Index: ctx.ChipIndex()}}, true
		}
		if ctx.TotalItems() > 0 {
			return []types.Action{
				types.OpenLightboxAction{Index: ctx.CurrentIndex()},
				types.ChangeModeAction{Mode: types.ModeLightbox},
			}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "/", "i":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	if ctx.ActiveTab() != domain.WidgetGallery {
		return nil, false
	}

	switch msg.String() {
	case "m":
		if ctx.LoadMoreVisible() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, false

	case "]":
		if ctx.ChipCount() > 0 {
			return []types.Action{types.ChipNavigateAction{Direction: "next"}}, true
		}
		return nil, false

	case "[":
		if ctx.ChipCount() > 0 {
			return []types.Action{types.ChipNavigateAction{Direction: "prev"}}, true
		}
		return nil, false

	case "d":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.DownloadAction{}}, true
		}
		return nil, false

	case "o":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenURLAction{}}, true
		}
		return nil, false
	}

	return nil, false
}
