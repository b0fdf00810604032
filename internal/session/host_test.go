package session

import (
	"sync"
	"testing"
	"time"

	"royal235/internal/wire"
	"royal235/zjh"
)

// fakeTransport 把房主发出的消息收进内存，代替真正的中继连接。
type fakeTransport struct {
	mu     sync.Mutex
	id     string
	roomID string
	sent   [][]byte
}

func (f *fakeTransport) SessionID() string { return f.id }

func (f *fakeTransport) JoinRoom(roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roomID = roomID
	return nil
}

func (f *fakeTransport) SendGameMessage(message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, append([]byte(nil), message...))
	return nil
}

func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) messages(t *testing.T) []wire.GameMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]wire.GameMessage, 0, len(f.sent))
	for _, data := range f.sent {
		msg, err := wire.DecodeGameMessage(data)
		if err != nil {
			t.Fatalf("host sent malformed message: %v", err)
		}
		out = append(out, msg)
	}
	return out
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func fastOptions() HostOptions {
	return HostOptions{
		DealDelay:    time.Millisecond,
		ResolveDelay: time.Millisecond,
		TickInterval: time.Millisecond,
		BotDelay:     time.Millisecond,
		BotSeed:      42,
	}
}

func newTestHost(t *testing.T, bots int) (*Host, *fakeTransport) {
	t.Helper()
	host, err := NewHost(zjh.DefaultConfig(), fastOptions())
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if err := host.SeatBots(bots); err != nil {
		t.Fatalf("SeatBots: %v", err)
	}
	ft := &fakeTransport{id: "host-conn"}
	host.SetTransport(ft)
	t.Cleanup(host.Close)
	return host, ft
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestHostSeatsPeerAndSendsTargetedWelcome(t *testing.T) {
	host, ft := newTestHost(t, 1)
	host.Start()

	host.Handlers().OnPeerConnected("sock-9")

	waitFor(t, 2*time.Second, func() bool { return host.Game().PlayerCount() == 2 })

	var welcome *wire.WelcomePayload
	syncs := 0
	for _, msg := range ft.messages(t) {
		switch msg.Type {
		case wire.MessageWelcome:
			p, err := wire.DecodeWelcomePayload(msg.Payload)
			if err != nil {
				t.Fatalf("bad welcome: %v", err)
			}
			welcome = &p
		case wire.MessageStateSync:
			syncs++
		}
	}
	if welcome == nil {
		t.Fatalf("peer join must produce a WELCOME")
	}
	if welcome.ForSocketID != "sock-9" {
		t.Fatalf("WELCOME must be addressed to the joining connection, got %q", welcome.ForSocketID)
	}
	if welcome.PlayerID != 1 {
		t.Fatalf("peer should get the next seat in join order, got %d", welcome.PlayerID)
	}
	if syncs == 0 {
		t.Fatalf("peer join must be followed by a state sync")
	}
}

func TestPeerJoinBeforeStartIsConsumedAfterStart(t *testing.T) {
	host, _ := newTestHost(t, 2)

	// 事件循环未启动时入房通知只会排队，不会入座
	host.Handlers().OnPeerConnected("sock-1")

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		if host.Game().PlayerCount() != 2 {
			t.Fatalf("peer must not be seated before the loop runs")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// 启动后排队的通知要被消费掉
	host.Start()
	waitFor(t, 2*time.Second, func() bool { return host.Game().PlayerCount() == 3 })
}

func TestHostDropsInvalidActionsSilently(t *testing.T) {
	host, ft := newTestHost(t, 0)
	if _, err := host.SeatPlayer("甲"); err != nil {
		t.Fatalf("SeatPlayer: %v", err)
	}
	if _, err := host.SeatPlayer("乙"); err != nil {
		t.Fatalf("SeatPlayer: %v", err)
	}
	host.Start()

	if err := host.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return host.Game().Phase() == zjh.PhaseBetting })
	time.Sleep(50 * time.Millisecond) // 让发牌阶段的广播落地

	turnBefore := host.Game().Turn()
	wrongSeat := (turnBefore + 1) % 2
	countBefore := ft.sentCount()

	// 抢跑的动作
	data, err := wire.NewActionMessage(wire.ActionPayload{Action: "CALL", PlayerID: wrongSeat})
	if err != nil {
		t.Fatalf("NewActionMessage: %v", err)
	}
	host.Handlers().OnGameMessage(data)

	// 畸形载荷
	host.Handlers().OnGameMessage([]byte(`{"type":"ACTION","payload":"garbage"`))
	// 未知动作名
	bad, _ := wire.NewActionMessage(wire.ActionPayload{Action: "STEAL_POT", PlayerID: turnBefore})
	host.Handlers().OnGameMessage(bad)

	time.Sleep(100 * time.Millisecond)
	if host.Game().Turn() != turnBefore {
		t.Fatalf("invalid actions must not move the turn")
	}
	if ft.sentCount() != countBefore {
		t.Fatalf("invalid actions must not trigger a broadcast")
	}
}

func TestHostAppliesValidRemoteAction(t *testing.T) {
	host, ft := newTestHost(t, 0)
	host.SeatPlayer("甲")
	host.SeatPlayer("乙")
	host.Start()

	if err := host.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return host.Game().Phase() == zjh.PhaseBetting })

	turn := host.Game().Turn()
	countBefore := ft.sentCount()
	data, err := wire.NewActionMessage(wire.ActionPayload{Action: "CALL", PlayerID: turn})
	if err != nil {
		t.Fatalf("NewActionMessage: %v", err)
	}
	host.Handlers().OnGameMessage(data)

	waitFor(t, 2*time.Second, func() bool { return host.Game().Turn() != turn })
	if ft.sentCount() <= countBefore {
		t.Fatalf("an applied action must broadcast a sync")
	}

	// 最新一条同步必须带完整玩家列表
	msgs := ft.messages(t)
	last := msgs[len(msgs)-1]
	if last.Type != wire.MessageStateSync {
		t.Fatalf("expected a state sync, got %q", last.Type)
	}
	sync, err := wire.DecodeStateSync(last.Payload)
	if err != nil {
		t.Fatalf("bad sync: %v", err)
	}
	if len(sync.Players) != 2 {
		t.Fatalf("sync must carry the full player list, got %d", len(sync.Players))
	}
}

func TestAllBotTablePlaysHandToShowdown(t *testing.T) {
	host, _ := newTestHost(t, 3)
	host.Start()

	if err := host.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	waitFor(t, 20*time.Second, func() bool { return host.Game().Phase() == zjh.PhaseShowdown })

	snap := host.Game().Snapshot()
	if snap.WinnerSeat == zjh.InvalidSeat {
		t.Fatalf("showdown must name a winner")
	}
	if snap.Pot != 0 {
		t.Fatalf("pot must be awarded at showdown, got %d", snap.Pot)
	}

	// 总筹码守恒
	var total int64
	for _, p := range snap.Players {
		total += p.Chips
	}
	if total != int64(len(snap.Players))*zjh.DefaultConfig().InitialChips {
		t.Fatalf("chips must be conserved across the hand: %d", total)
	}
}

func TestLocalActionErrorsAreReturned(t *testing.T) {
	host, _ := newTestHost(t, 0)
	host.SeatPlayer("甲")
	host.SeatPlayer("乙")
	host.Start()

	if err := host.SubmitAction(0, zjh.ActionCall, 0, zjh.InvalidSeat); err == nil {
		t.Fatalf("acting before the hand must error for the local seat")
	}
}
