package bot

import "time"

// Persona defines a named bot character.
type Persona struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Avatar     string        `json:"avatar"`
	ThinkDelay time.Duration `json:"thinkDelay"`
}

// DefaultPersonas 默认电脑玩家，按座位顺序取用。
var DefaultPersonas = []Persona{
	{ID: "bot-1", Name: "电脑 1", Avatar: "bot-1", ThinkDelay: 1500 * time.Millisecond},
	{ID: "bot-2", Name: "电脑 2", Avatar: "bot-2", ThinkDelay: 1500 * time.Millisecond},
	{ID: "bot-3", Name: "电脑 3", Avatar: "bot-3", ThinkDelay: 1500 * time.Millisecond},
	{ID: "bot-4", Name: "电脑 4", Avatar: "bot-4", ThinkDelay: 1500 * time.Millisecond},
	{ID: "bot-5", Name: "电脑 5", Avatar: "bot-5", ThinkDelay: 1500 * time.Millisecond},
}
