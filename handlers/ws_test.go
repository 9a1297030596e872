// handlers/ws_test.go - Socket frame dispatch
package handlers

import (
	"encoding/json"
	"testing"

	"collegeconnect/services"
)

// staticMembers is a canned membership table keyed by group id.
type staticMembers map[uint][]uint

func (m staticMembers) IsMember(groupID, userID uint) bool {
	for _, id := range m[groupID] {
		if id == userID {
			return true
		}
	}
	return false
}

func joinFrame(t *testing.T, groupID uint) clientFrame {
	t.Helper()
	payload, err := json.Marshal(map[string]uint{"groupId": groupID})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return clientFrame{Type: "joinGroup", Payload: payload}
}

func TestJoinGroupRequiresMembership(t *testing.T) {
	h := services.NewHub()
	router := &socketRouter{hub: h, members: staticMembers{7: {42}}}

	member := services.NewSocketClient("member")
	h.Register(member)
	h.Authenticate(member, 42)

	router.dispatch(member, joinFrame(t, 7))
	if !h.IsSubscribed(member, 7) {
		t.Fatal("expected member to be subscribed after joinGroup")
	}
	select {
	case event := <-member.Send:
		if event.Type != "joinedGroup" {
			t.Errorf("expected joinedGroup ack, got %s", event.Type)
		}
	default:
		t.Error("expected joinedGroup ack to be queued")
	}
}

func TestJoinGroupSilentlyIgnoresUnauthorized(t *testing.T) {
	h := services.NewHub()
	router := &socketRouter{hub: h, members: staticMembers{7: {42}}}

	// Never authenticated: identity 0.
	anon := services.NewSocketClient("anon")
	h.Register(anon)
	router.dispatch(anon, joinFrame(t, 7))
	if h.IsSubscribed(anon, 7) {
		t.Error("unauthenticated client must not be subscribed")
	}

	// Authenticated but not a member of the group.
	outsider := services.NewSocketClient("outsider")
	h.Register(outsider)
	h.Authenticate(outsider, 99)
	router.dispatch(outsider, joinFrame(t, 7))
	if h.IsSubscribed(outsider, 7) {
		t.Error("non-member must not be subscribed")
	}

	// Neither client gets an ack or an error frame back.
	for _, client := range []*services.SocketClient{anon, outsider} {
		select {
		case event := <-client.Send:
			t.Errorf("expected no frame for %s, got %s", client.ID, event.Type)
		default:
		}
	}
}

func TestDispatchPingAndLeave(t *testing.T) {
	h := services.NewHub()
	router := &socketRouter{hub: h, members: staticMembers{7: {42}}}

	client := services.NewSocketClient("c1")
	h.Register(client)
	h.Authenticate(client, 42)
	router.dispatch(client, joinFrame(t, 7))
	<-client.Send // joinedGroup ack

	router.dispatch(client, clientFrame{Type: "ping"})
	select {
	case event := <-client.Send:
		if event.Type != "pong" {
			t.Errorf("expected pong, got %s", event.Type)
		}
	default:
		t.Error("expected pong to be queued")
	}

	payload, _ := json.Marshal(map[string]uint{"groupId": 7})
	router.dispatch(client, clientFrame{Type: "leaveGroup", Payload: payload})
	if h.IsSubscribed(client, 7) {
		t.Error("expected client to be unsubscribed after leaveGroup")
	}
}
