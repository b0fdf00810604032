package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"royal235/internal/wire"
)

// renderSync 每次广播后把全量状态画到终端。
func renderSync(sync wire.StateSync) {
	rows := pterm.TableData{{"座位", "玩家", "筹码", "本轮注", "状态", "动作"}}
	for _, p := range sync.Players {
		name := p.Name
		if p.IsDealer {
			name += " (庄)"
		}
		if p.ID == sync.CurrentTurnIndex {
			name = pterm.LightYellow(name + " ◄")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			name,
			fmt.Sprintf("%d", p.Chips),
			fmt.Sprintf("%d", p.CurrentBet),
			statusLabel(p.Status),
			p.LastAction,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Printfln("底池 %s  当前注 %s  加注 %d/10  [%s]",
		pterm.LightGreen(fmt.Sprintf("%d", sync.Pot)),
		pterm.LightCyan(fmt.Sprintf("%d", sync.CurrentRoundBet)),
		sync.RaiseCount,
		sync.GamePhase,
	)
	if sync.LastLog != "" {
		pterm.Println(pterm.Gray(sync.LastLog))
	}
	if sync.WinnerID != nil {
		for _, p := range sync.Players {
			if p.ID == *sync.WinnerID {
				pterm.DefaultBox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).Printfln("%s 获胜!", p.Name)
			}
		}
	}
}

func statusLabel(status string) string {
	switch status {
	case "PLAYING":
		return pterm.LightGreen(status)
	case "FOLDED", "LOST":
		return pterm.LightRed(status)
	case "WON":
		return pterm.LightCyan(status)
	default:
		return status
	}
}
