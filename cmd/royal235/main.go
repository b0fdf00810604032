package main

import (
	"flag"
	"log"
	"time"

	"github.com/pterm/pterm"

	"royal235/internal/session"
	"royal235/zjh"
)

func main() {
	relayURL := flag.String("relay", "", "relay websocket url, e.g. ws://localhost:3000/ws (empty = offline table)")
	roomID := flag.String("room", "", "room code to open (empty = generate)")
	bots := flag.Int("bots", 2, "number of bots to seat")
	hands := flag.Int("hands", 0, "hands to play before exiting (0 = forever)")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	flag.Parse()

	cfg := zjh.DefaultConfig()
	cfg.Seed = *seed

	host, err := session.NewHost(cfg, session.HostOptions{
		BotSeed: *seed,
		OnSync:  renderSync,
	})
	if err != nil {
		log.Fatalf("[Main] Create host: %v", err)
	}

	if err := host.SeatBots(*bots); err != nil {
		log.Fatalf("[Main] Seat bots: %v", err)
	}

	// 事件循环必须先跑起来，之后的入房通知才有人消费
	host.Start()
	defer host.Close()

	if *relayURL != "" {
		rc, err := session.Dial(*relayURL, host.Handlers())
		if err != nil {
			log.Fatalf("[Main] Connect relay: %v", err)
		}
		defer rc.Close()
		host.SetTransport(rc)

		code, err := host.OpenRoom(*roomID)
		if err != nil {
			log.Fatalf("[Main] Open room: %v", err)
		}
		pterm.DefaultBox.WithTitle("Royal 235").Printfln("房间号: %s", code)

		// 等到至少有一个真人入座再开局
		for host.Game().PlayerCount() <= *bots {
			time.Sleep(500 * time.Millisecond)
		}
	} else {
		pterm.DefaultBox.WithTitle("Royal 235").Println("离线牌桌")
	}

	played := 0
	for {
		if err := host.StartHand(); err != nil {
			log.Fatalf("[Main] Start hand: %v", err)
		}
		for host.Game().Phase() != zjh.PhaseShowdown {
			time.Sleep(200 * time.Millisecond)
		}
		played++
		if *hands > 0 && played >= *hands {
			return
		}
		time.Sleep(3 * time.Second)
	}
}
