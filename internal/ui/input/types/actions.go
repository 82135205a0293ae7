package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// Gallery actions
type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

type ChipNavigateAction struct {
	Direction string // "next", "prev" or "none" to drop the focus
}

func (a ChipNavigateAction) Type() string { return "chip_navigate" }

type RunChipAction struct {
	Index int
}

func (a RunChipAction) Type() string { return "run_chip" }

// Image actions
type OpenLightboxAction struct {
	Index int
}

func (a OpenLightboxAction) Type() string { return "open_lightbox" }

type CloseLightboxAction struct{}

func (a CloseLightboxAction) Type() string { return "close_lightbox" }

type OpenURLAction struct{}

func (a OpenURLAction) Type() string { return "open_url" }

type DownloadAction struct{}

func (a DownloadAction) Type() string { return "download" }

// Application actions
type SwitchTabAction struct{}

func (a SwitchTabAction) Type() string { return "switch_tab" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
