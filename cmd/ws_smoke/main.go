package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"cardclash/internal/auth"
)

// Smoke-tests the full queue-to-resolution flow against a running server:
// two wallets connect over websocket, both enter the same stake queue and the
// script waits for the resolved event on each connection.
func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	tokenA, err := auth.GenerateToken([]byte(secret), "smoke-wallet-a")
	if err != nil {
		log.Fatalf("gen token A: %v", err)
	}
	tokenB, err := auth.GenerateToken([]byte(secret), "smoke-wallet-b")
	if err != nil {
		log.Fatalf("gen token B: %v", err)
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	connA, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenA), nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenB), nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	enqueue := func(token string, name string) {
		body := bytes.NewBufferString(`{"stake": 1}`)
		req, _ := http.NewRequest("POST", fmt.Sprintf("http://127.0.0.1:%s/api/v1/queue", port), body)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Fatalf("%s queue: %v", name, err)
		}
		defer res.Body.Close()
		if res.StatusCode != 200 {
			log.Fatalf("%s queue: status %d", name, res.StatusCode)
		}
	}

	enqueue(tokenA, "A")
	enqueue(tokenB, "B")

	waitResolved := func(conn *websocket.Conn, name string) {
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				continue
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, ok := obj["type"].(string); ok {
				log.Printf("%s got event: %s", name, t)
				if t == "resolved" {
					log.Printf("%s full message: %s", name, string(msg))
					return
				}
			}
		}
		log.Fatalf("%s: no resolved event within deadline", name)
	}

	waitResolved(connA, "A")
	waitResolved(connB, "B")

	log.Println("smoke test finished")
}
