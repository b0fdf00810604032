package zjh

import "fmt"

type Config struct {
	// Table
	MaxPlayers int
	MinPlayers int

	// Stakes
	Ante         int64
	MinRaise     int64
	InitialChips int64

	// 同一手牌内的加注次数上限
	RaiseCap int

	// RNG seed (0 => time-based)
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		MaxPlayers:   6,
		MinPlayers:   2,
		Ante:         1000,
		MinRaise:     1000,
		InitialChips: 1000000,
		RaiseCap:     10,
	}
}

func (c Config) validate() error {
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("MaxPlayers must be > 0")
	}
	if c.MinPlayers < 2 {
		return fmt.Errorf("MinPlayers must be >= 2")
	}
	if c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("MinPlayers must be <= MaxPlayers")
	}
	if c.Ante <= 0 {
		return fmt.Errorf("Ante must be > 0")
	}
	if c.MinRaise <= 0 {
		return fmt.Errorf("MinRaise must be > 0")
	}
	if c.InitialChips < c.Ante {
		return fmt.Errorf("InitialChips must cover the ante")
	}
	if c.RaiseCap <= 0 {
		return fmt.Errorf("RaiseCap must be > 0")
	}
	return nil
}
