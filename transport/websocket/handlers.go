package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingRoomCode = errors.New("room code is required")
	ErrMissingCell     = errors.New("cell is required")
	ErrMissingMove     = errors.New("from and to cells are required")
)

func (that *Server) handleConnect(ctx context.Context, connected *client, message *Message) error {
	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var requestedID string
	if payload.Player != nil {
		requestedID = payload.Player.ID
	}

	player, err := that.rooms.GetOrCreatePlayer(ctx, requestedID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	connected.playerID = player.ID

	if requestedID == player.ID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	return connected.send(message.Action, ResponsePayload{Player: player})
}

func (that *Server) handleCreateRoom(ctx context.Context, connected *client, message *Message) error {
	if connected.playerID == "" {
		return ErrNotConnected
	}

	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, err := that.rooms.CreateRoom(ctx, payload.Kind)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return connected.send(message.Action, ResponsePayload{Room: room})
}

func (that *Server) handleJoinRoom(ctx context.Context, connected *client, message *Message) error {
	if connected.playerID == "" {
		return ErrNotConnected
	}

	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Code == "" {
		return ErrMissingRoomCode
	}

	room, err := that.rooms.JoinRoom(ctx, payload.Code, connected.playerID)
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	that.subscribe(connected, payload.Code)

	if err = connected.send(message.Action, ResponsePayload{Room: room}); err != nil {
		return err
	}

	that.broadcastRoom(payload.Code)

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, connected *client, message *Message) error {
	if connected.playerID == "" {
		return ErrNotConnected
	}

	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Code == "" {
		return ErrMissingRoomCode
	}

	if err := that.rooms.LeaveRoom(ctx, payload.Code, connected.playerID); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	that.unsubscribe(connected, payload.Code)
	that.broadcastRoom(payload.Code)

	return connected.send(message.Action, ResponsePayload{})
}

func (that *Server) handleRoomState(_ context.Context, connected *client, message *Message) error {
	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Code == "" {
		return ErrMissingRoomCode
	}

	room, err := that.rooms.RoomSnapshot(payload.Code)
	if err != nil {
		return fmt.Errorf("failed to get room state: %w", err)
	}

	return connected.send(message.Action, ResponsePayload{Room: room})
}

func (that *Server) handleTicTacToeTurn(ctx context.Context, connected *client, message *Message) error {
	if connected.playerID == "" {
		return ErrNotConnected
	}

	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Code == "" {
		return ErrMissingRoomCode
	}

	if payload.Cell == nil {
		return ErrMissingCell
	}

	if _, err := that.rooms.MakeTicTacToeTurn(ctx, payload.Code, connected.playerID, *payload.Cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcastRoom(payload.Code)

	return nil
}

func (that *Server) handleCheckersMove(ctx context.Context, connected *client, message *Message) error {
	if connected.playerID == "" {
		return ErrNotConnected
	}

	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Code == "" {
		return ErrMissingRoomCode
	}

	if payload.From == nil || payload.To == nil {
		return ErrMissingMove
	}

	if _, err := that.rooms.MakeCheckersMove(ctx, payload.Code, connected.playerID, *payload.From, *payload.To); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.broadcastRoom(payload.Code)

	return nil
}
