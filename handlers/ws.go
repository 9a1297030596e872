// handlers/ws.go - WebSocket endpoint for real-time chat
package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"collegeconnect/services"
)

// clientFrame is an inbound socket frame. Payload stays raw until the frame
// type says how to decode it.
type clientFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// memberChecker answers whether a user belongs to a group. Satisfied by
// services.GroupService.
type memberChecker interface {
	IsMember(groupID, userID uint) bool
}

// socketRouter dispatches inbound socket frames against the hub, gating
// channel joins on group membership.
type socketRouter struct {
	hub     *services.Hub
	members memberChecker
}

// WSUpgrade rejects plain HTTP requests to the socket endpoint.
func WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WSHandler serves one socket connection: registers it with the hub, pumps
// outbound frames from the client's send buffer, and dispatches inbound
// events until the peer disconnects.
func WSHandler(conn *websocket.Conn) {
	client := services.NewSocketClient(uuid.New().String())
	hub.Register(client)
	defer hub.Unregister(client)

	log.Printf("🔌 Socket connected: %s", client.ID)

	done := make(chan struct{})
	go writePump(conn, client, done)
	defer close(done)

	client.Queue(services.SocketEvent{Type: "connected", Payload: fiber.Map{"client_id": client.ID}})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("⚠️ Invalid socket frame from %s: %s", client.ID, string(raw))
			continue
		}
		wsRouter.dispatch(client, frame)
	}

	log.Printf("🔌 Socket disconnected: %s", client.ID)
}

func writePump(conn *websocket.Conn, client *services.SocketClient, done chan struct{}) {
	for {
		select {
		case event, ok := <-client.Send:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (r *socketRouter) dispatch(client *services.SocketClient, frame clientFrame) {
	switch frame.Type {
	case "authenticate":
		var payload struct {
			UserID uint `json:"userId"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.UserID == 0 {
			return
		}
		r.hub.Authenticate(client, payload.UserID)
		client.Queue(services.SocketEvent{Type: "authenticated", Payload: fiber.Map{"user_id": payload.UserID}})

	case "joinGroup":
		var payload struct {
			GroupID uint `json:"groupId"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.GroupID == 0 {
			return
		}
		userID := client.UserID()
		// Non-members get no subscription and no error frame; the request
		// just disappears.
		if userID == 0 || !r.members.IsMember(payload.GroupID, userID) {
			return
		}
		r.hub.Subscribe(client, payload.GroupID)
		client.Queue(services.SocketEvent{Type: "joinedGroup", Payload: fiber.Map{"group_id": payload.GroupID}})

	case "leaveGroup":
		var payload struct {
			GroupID uint `json:"groupId"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.GroupID == 0 {
			return
		}
		r.hub.Unsubscribe(client, payload.GroupID)

	case "ping":
		client.Queue(services.SocketEvent{Type: "pong", Payload: nil})

	default:
		log.Printf("⚠️ Unknown socket event type: %s", frame.Type)
	}
}
