package services

import (
	"fmt"
	"testing"
)

func TestHubSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()

	c1 := NewSocketClient("c1")
	c2 := NewSocketClient("c2")
	c3 := NewSocketClient("c3")
	for _, c := range []*SocketClient{c1, c2, c3} {
		hub.Register(c)
	}

	hub.Subscribe(c1, 7)
	hub.Subscribe(c2, 7)
	hub.Subscribe(c3, 8)

	hub.Broadcast(7, "newMessage", "payload")

	for _, c := range []*SocketClient{c1, c2} {
		select {
		case event := <-c.Send:
			if event.Type != "newMessage" {
				t.Errorf("expected newMessage, got %s", event.Type)
			}
		default:
			t.Errorf("client %s should have received the broadcast", c.ID)
		}
	}

	select {
	case event := <-c3.Send:
		t.Errorf("client on another channel received %s", event.Type)
	default:
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	client := NewSocketClient("c1")
	hub.Register(client)

	hub.Subscribe(client, 7)
	if !hub.IsSubscribed(client, 7) {
		t.Fatal("expected subscription")
	}

	hub.Unsubscribe(client, 7)
	if hub.IsSubscribed(client, 7) {
		t.Fatal("expected subscription removed")
	}

	hub.Broadcast(7, "newMessage", nil)
	select {
	case <-client.Send:
		t.Error("unsubscribed client received a broadcast")
	default:
	}
}

func TestHubUnregisterDropsAllSubscriptions(t *testing.T) {
	hub := NewHub()
	client := NewSocketClient("c1")
	hub.Register(client)
	hub.Authenticate(client, 42)
	hub.Subscribe(client, 1)
	hub.Subscribe(client, 2)

	hub.Unregister(client)

	if hub.SubscriberCount(1) != 0 || hub.SubscriberCount(2) != 0 {
		t.Error("unregister should remove every channel subscription")
	}
	if _, ok := hub.FindClient(42); ok {
		t.Error("unregister should remove the user mapping")
	}
}

func TestHubAuthenticateMapsUser(t *testing.T) {
	hub := NewHub()
	client := NewSocketClient("c1")
	hub.Register(client)

	if client.UserID() != 0 {
		t.Error("fresh connection should be anonymous")
	}
	if _, ok := hub.FindClient(42); ok {
		t.Error("no connection should resolve before authenticate")
	}

	hub.Authenticate(client, 42)
	if client.UserID() != 42 {
		t.Errorf("expected user 42, got %d", client.UserID())
	}
	found, ok := hub.FindClient(42)
	if !ok || found != client {
		t.Error("FindClient should resolve the authenticated connection")
	}

	// A newer connection for the same user wins the mapping; unregistering
	// the old one must not clobber it.
	newer := NewSocketClient("c2")
	hub.Register(newer)
	hub.Authenticate(newer, 42)
	hub.Unregister(client)

	found, ok = hub.FindClient(42)
	if !ok || found != newer {
		t.Error("latest connection should keep the user mapping")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	slow := NewSocketClient("slow")
	hub.Register(slow)
	hub.Subscribe(slow, 7)

	// Nobody drains slow.Send; the hub must not block once the buffer fills.
	for i := 0; i < sendBufferSize+10; i++ {
		hub.Broadcast(7, "newMessage", fmt.Sprintf("m%d", i))
	}

	if got := len(slow.Send); got != sendBufferSize {
		t.Errorf("expected buffer capped at %d, got %d", sendBufferSize, got)
	}
}
