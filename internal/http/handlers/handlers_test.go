package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardclash/internal/arena"
	"cardclash/internal/http/middleware"
	"cardclash/internal/ledger"
	"cardclash/internal/queue"
	"cardclash/internal/store"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

type stubBoards struct{}

func (stubBoards) Top(ctx context.Context, limit int) ([]*store.LeaderboardEntry, error) {
	return []*store.LeaderboardEntry{
		{Rank: 1, Wallet: "alice", Username: "alice", Elo: 1012, Level: 1, Wins: 1},
	}, nil
}

func newRouter(t *testing.T) (*gin.Engine, *env) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		profiles: store.NewMemoryProfiles(100),
		matches:  store.NewMemoryMatches(),
		history:  store.NewMemoryHistory(),
	}
	e.ledger = ledger.New(e.profiles)
	e.queue = queue.New(e.ledger)
	e.arena = arena.New(arena.Config{
		ReadyDelay:   2 * time.Millisecond,
		ResolveDelay: 10 * time.Millisecond,
		QueueTimeout: time.Minute,
	}, e.profiles, e.matches, e.history, e.ledger, e.queue, nil)
	t.Cleanup(e.arena.Shutdown)

	h := NewHandler(HandlerConfig{MinStake: 1, MaxStake: 100, JWTSecret: testSecret},
		e.arena, e.profiles, e.history, stubBoards{})

	r := gin.New()
	jwt := middleware.JWT(testSecret)
	r.POST("/api/v1/auth", h.Auth)
	r.GET("/api/v1/me", jwt, h.Me)
	r.GET("/api/v1/me/matches", jwt, h.MyMatches)
	r.GET("/api/v1/profile/:wallet", h.Profile)
	r.GET("/api/v1/leaderboard", h.Leaderboard)
	r.POST("/api/v1/queue", jwt, h.EnterQueue)
	r.POST("/api/v1/queue/cancel", jwt, h.CancelQueue)
	r.GET("/api/v1/match/:id", jwt, h.Match)
	return r, e
}

type env struct {
	arena    *arena.Arena
	profiles *store.MemoryProfiles
	matches  *store.MemoryMatches
	history  *store.MemoryHistory
	ledger   *ledger.Ledger
	queue    *queue.Queue
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func authToken(t *testing.T, r *gin.Engine, wallet string) string {
	t.Helper()
	w, out := doJSON(t, r, "POST", "/api/v1/auth", "", gin.H{"wallet": wallet})
	if w.Code != http.StatusOK {
		t.Fatalf("auth status = %d: %s", w.Code, w.Body.String())
	}
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("auth returned no token: %v", out)
	}
	return token
}

func TestAuthCreatesProfile(t *testing.T) {
	r, _ := newRouter(t)
	token := authToken(t, r, "wallet-1")

	w, out := doJSON(t, r, "GET", "/api/v1/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	if out["wallet"] != "wallet-1" {
		t.Fatalf("me wallet = %v", out["wallet"])
	}
	if out["credits"] != float64(100) {
		t.Fatalf("starting credits = %v, want 100", out["credits"])
	}
}

func TestAuthRejectsEmptyWallet(t *testing.T) {
	r, _ := newRouter(t)
	w, _ := doJSON(t, r, "POST", "/api/v1/auth", "", gin.H{"wallet": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newRouter(t)
	for _, path := range []string{"/api/v1/me", "/api/v1/me/matches"} {
		w, _ := doJSON(t, r, "GET", path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token = %d, want 401", path, w.Code)
		}
	}
	w, _ := doJSON(t, r, "POST", "/api/v1/queue", "", gin.H{"stake": 10})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("queue without token = %d, want 401", w.Code)
	}
}

func TestQueueStakeValidation(t *testing.T) {
	r, _ := newRouter(t)
	token := authToken(t, r, "wallet-1")

	for _, stake := range []int64{0, -5, 101} {
		w, _ := doJSON(t, r, "POST", "/api/v1/queue", token, gin.H{"stake": stake})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("stake %d = %d, want 400", stake, w.Code)
		}
	}
}

func TestQueueInsufficientCredits(t *testing.T) {
	r, e := newRouter(t)
	token := authToken(t, r, "wallet-1")

	if _, err := e.ledger.Adjust(context.Background(), "wallet-1", -95); err != nil {
		t.Fatalf("drain wallet: %v", err)
	}

	w, _ := doJSON(t, r, "POST", "/api/v1/queue", token, gin.H{"stake": 10})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", w.Code)
	}
}

func TestQueuePairAndFetchMatch(t *testing.T) {
	r, _ := newRouter(t)
	tokenA := authToken(t, r, "alice")
	tokenB := authToken(t, r, "bob")

	w, out := doJSON(t, r, "POST", "/api/v1/queue", tokenA, gin.H{"stake": 10})
	if w.Code != http.StatusOK || out["status"] != "queued" {
		t.Fatalf("first queue = %d %v", w.Code, out)
	}

	w, out = doJSON(t, r, "POST", "/api/v1/queue", tokenB, gin.H{"stake": 10})
	if w.Code != http.StatusOK || out["status"] != "matched" {
		t.Fatalf("second queue = %d %v", w.Code, out)
	}
	match, _ := out["match"].(map[string]any)
	if match == nil {
		t.Fatalf("no match in response: %v", out)
	}
	matchID, _ := match["id"].(string)

	w, got := doJSON(t, r, "GET", "/api/v1/match/"+matchID, tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get match = %d", w.Code)
	}
	if got["id"] != matchID {
		t.Fatalf("match id = %v", got["id"])
	}
}

func TestMatchHidesOpponentCardsBeforeReady(t *testing.T) {
	r, _ := newRouter(t)
	token := authToken(t, r, "alice")

	// a bot match is created unready and resolves after the delay
	_, out := doJSON(t, r, "POST", "/api/v1/queue", token, gin.H{"stake": 1, "vs_bot": true})
	match, _ := out["match"].(map[string]any)
	seatB, _ := match["seat_b"].(map[string]any)
	cards, _ := seatB["cards"].([]any)
	for _, c := range cards {
		cm, _ := c.(map[string]any)
		if cm["rank"] != "" {
			t.Fatalf("opponent card exposed before ready: %v", c)
		}
	}
	seatA, _ := match["seat_a"].(map[string]any)
	own, _ := seatA["cards"].([]any)
	if len(own) != 3 {
		t.Fatalf("own cards = %v", own)
	}
	if cm, _ := own[0].(map[string]any); cm["rank"] == "" {
		t.Fatal("own cards were redacted")
	}
}

func TestMatchNotFound(t *testing.T) {
	r, _ := newRouter(t)
	token := authToken(t, r, "alice")
	w, _ := doJSON(t, r, "GET", "/api/v1/match/nope", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCancelQueue(t *testing.T) {
	r, _ := newRouter(t)
	token := authToken(t, r, "alice")

	_, _ = doJSON(t, r, "POST", "/api/v1/queue", token, gin.H{"stake": 10})
	w, out := doJSON(t, r, "POST", "/api/v1/queue/cancel", token, nil)
	if w.Code != http.StatusOK || out["cancelled"] != true {
		t.Fatalf("cancel = %d %v", w.Code, out)
	}

	w, _ = doJSON(t, r, "POST", "/api/v1/queue/cancel", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second cancel = %d, want 404", w.Code)
	}
}

func TestPublicProfileAndLeaderboard(t *testing.T) {
	r, _ := newRouter(t)
	_ = authToken(t, r, "alice")

	w, out := doJSON(t, r, "GET", "/api/v1/profile/alice", "", nil)
	if w.Code != http.StatusOK || out["wallet"] != "alice" {
		t.Fatalf("profile = %d %v", w.Code, out)
	}
	if _, exposed := out["credits"]; exposed {
		t.Fatal("public profile exposes the balance")
	}

	w, _ = doJSON(t, r, "GET", "/api/v1/profile/nobody", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown profile = %d, want 404", w.Code)
	}

	w, out = doJSON(t, r, "GET", "/api/v1/leaderboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard = %d", w.Code)
	}
	if _, ok := out["leaderboard"].([]any); !ok {
		t.Fatalf("leaderboard payload = %v", out)
	}
}
