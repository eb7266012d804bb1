package entity

type Player struct {
	Mark        string `json:"mark"`
	DisplayName string `json:"name,omitempty"`
	Bot         bool   `json:"bot,omitempty"`
}

func NewPlayer(mark, name string) *Player {
	return &Player{Mark: mark, DisplayName: name}
}

func NewBotPlayer(mark string) *Player {
	return &Player{Mark: mark, DisplayName: "Bot", Bot: true}
}

// Name returns the display name, falling back to the mark itself.
func (that *Player) Name() string {
	if that.DisplayName != "" {
		return that.DisplayName
	}

	return that.Mark
}

func (that *Player) IsBot() bool {
	return that.Bot
}
