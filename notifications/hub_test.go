package notifications

import (
	"encoding/json"
	"testing"
	"time"

	"greenzest/models"
)

func TestHubRegisterPushUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.register <- client

	n := models.Notification{UserID: "u1", Type: models.NotifSystem, Message: "hello test"}
	data, _ := json.Marshal(n)
	hub.Push("u1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notification")
	}

	hub.unregister <- client
}

func TestHubPushTargetsOnlyTheUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	alice := &Client{Send: make(chan []byte, 10), UserID: "alice"}
	bob := &Client{Send: make(chan []byte, 10), UserID: "bob"}
	hub.register <- alice
	hub.register <- bob

	hub.Push("alice", []byte("for alice"))

	select {
	case got := <-alice.Send:
		if string(got) != "for alice" {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for alice's notification")
	}

	select {
	case got := <-bob.Send:
		t.Fatalf("bob received %s but should get nothing", got)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- alice
	hub.unregister <- bob
}
