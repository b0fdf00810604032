package wire

import (
	"encoding/json"
	"fmt"

	"royal235/card"
	"royal235/zjh"
)

// CardToState converts an engine card to its wire form.
func CardToState(c card.Card) CardState {
	return CardState{
		Suit: c.Suit().String(),
		Rank: c.Rank(),
		ID:   c.ID(),
	}
}

func PlayerToState(ps zjh.PlayerSnapshot) PlayerState {
	out := PlayerState{
		ID:           ps.Seat,
		Name:         ps.Name,
		IsHuman:      ps.Human,
		Chips:        ps.Chips,
		Cards:        make([]CardState, 0, len(ps.HandCards)),
		HasSeenCards: ps.HasSeenCards,
		Status:       ps.Status.String(),
		CurrentBet:   ps.Bet,
		IsDealer:     ps.Dealer,
		LastAction:   ps.LastAction,
	}
	if ps.LastAction != "" {
		out.LastActionType = zjh.MoodDictionary[ps.LastMood]
	}
	for _, c := range ps.HandCards {
		out.Cards = append(out.Cards, CardToState(c))
	}
	return out
}

// SnapshotToSync converts a full engine snapshot to the wire sync payload.
func SnapshotToSync(snap zjh.Snapshot) StateSync {
	sync := StateSync{
		Players:          make([]PlayerState, 0, len(snap.Players)),
		Pot:              snap.Pot,
		GamePhase:        snap.Phase.String(),
		CurrentTurnIndex: snap.Turn,
		CurrentRoundBet:  snap.CurrentRoundBet,
		RaiseCount:       snap.RaiseCount,
		LastLog:          snap.LastLog,
	}
	for _, ps := range snap.Players {
		sync.Players = append(sync.Players, PlayerToState(ps))
	}
	if snap.WinnerSeat != zjh.InvalidSeat {
		w := snap.WinnerSeat
		sync.WinnerID = &w
	}
	if snap.ComparingSeat != zjh.InvalidSeat {
		c := snap.ComparingSeat
		sync.ComparingInitiatorID = &c
	}
	if snap.Event != nil {
		sync.Event = eventToPayload(snap)
	}
	return sync
}

func eventToPayload(snap zjh.Snapshot) *EventPayload {
	ev := snap.Event
	out := &EventPayload{Type: zjh.EventTypeDictionary[ev.Type]}
	switch ev.Type {
	case zjh.EventChipFly:
		out.PlayerID = ev.Seat
	case zjh.EventCompareStart:
		if ev.Duel != nil {
			out.Data = &CompareData{
				PA:       PlayerToState(snap.Players[ev.Duel.InitiatorSeat]),
				PB:       PlayerToState(snap.Players[ev.Duel.TargetSeat]),
				WinnerID: ev.Duel.WinnerSeat,
			}
		}
	}
	return out
}

// ActionFromWire maps a wire action name to the engine action type.
func ActionFromWire(name string) (zjh.ActionType, error) {
	for a, s := range zjh.ActionTypeDictionary {
		if s == name && a != zjh.ActionNone {
			return a, nil
		}
	}
	return zjh.ActionNone, fmt.Errorf("unknown action %q", name)
}

// ActionToWire maps an engine action type to its wire name.
func ActionToWire(a zjh.ActionType) string {
	return zjh.ActionTypeDictionary[a]
}

// --- Envelope helpers ---

func NewStateSyncMessage(sync StateSync) ([]byte, error) {
	return MarshalGameMessage(MessageStateSync, sync)
}

func NewWelcomeMessage(playerID int, socketID string) ([]byte, error) {
	return MarshalGameMessage(MessageWelcome, WelcomePayload{
		PlayerID:       playerID,
		TargetSocketID: socketID,
		ForSocketID:    socketID,
	})
}

func NewActionMessage(p ActionPayload) ([]byte, error) {
	return MarshalGameMessage(MessageAction, p)
}

func MarshalGameMessage(t MessageType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return json.Marshal(GameMessage{Type: t, Payload: raw})
}

func DecodeGameMessage(data []byte) (GameMessage, error) {
	var msg GameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return GameMessage{}, fmt.Errorf("decode game message: %w", err)
	}
	return msg, nil
}

func DecodeActionPayload(raw json.RawMessage) (ActionPayload, error) {
	var p ActionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ActionPayload{}, fmt.Errorf("decode action payload: %w", err)
	}
	return p, nil
}

func DecodeWelcomePayload(raw json.RawMessage) (WelcomePayload, error) {
	var p WelcomePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return WelcomePayload{}, fmt.Errorf("decode welcome payload: %w", err)
	}
	return p, nil
}

func DecodeStateSync(raw json.RawMessage) (StateSync, error) {
	var p StateSync
	if err := json.Unmarshal(raw, &p); err != nil {
		return StateSync{}, fmt.Errorf("decode state sync: %w", err)
	}
	return p, nil
}
