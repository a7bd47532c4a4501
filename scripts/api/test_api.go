// Minimal end-to-end check of a running admin API and its Redis stream.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	baseURL   = getenv("API_URL", "http://localhost:8080")
	redisURL  = getenv("REDIS_URL", "")
	jwtSecret = getenv("JWT_SECRET", "")
	guildID   = getenv("GUILD_ID", "")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	token := sign()

	doReq("GET", "/healthz", "", nil, nil, http.StatusOK)

	id := createQuestion(token)
	checkQuestion(token, id)
	doReq("PATCH", fmt.Sprintf("/v1/admin/questions/%d", id), token, map[string]any{"active": false}, nil, http.StatusOK)

	pollID := createPoll(token)
	doReq("PATCH", fmt.Sprintf("/v1/admin/polls/%d", pollID), token, map[string]any{"active": false}, nil, http.StatusOK)

	if guildID != "" {
		var cfg map[string]any
		doReq("GET", "/v1/admin/guilds/"+guildID+"/config", token, nil, &cfg, http.StatusOK)
		log.Printf("guild %s config: %v", guildID, cfg)
	}
	if redisURL != "" {
		checkStream()
	}

	fmt.Println("✓ all endpoints passed")
}

func sign() string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "smoke-test",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})
	s, err := tok.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	return s
}

func createQuestion(tok string) uint64 {
	var resp struct{ ID uint64 }
	doReq("POST", "/v1/admin/questions", tok, map[string]any{
		"text":   "integration-test " + uuid.NewString(),
		"active": false,
	}, &resp, http.StatusCreated)
	return resp.ID
}

func checkQuestion(tok string, want uint64) {
	var resp struct {
		Questions []struct{ ID uint64 }
	}
	doReq("GET", "/v1/admin/questions", tok, nil, &resp, http.StatusOK)
	for _, q := range resp.Questions {
		if q.ID == want {
			return
		}
	}
	log.Fatal("questions: created question not found")
}

func createPoll(tok string) uint64 {
	var resp struct{ ID uint64 }
	doReq("POST", "/v1/admin/polls", tok, map[string]any{
		"prompt":  "integration-test " + uuid.NewString(),
		"options": []string{"yes", "no"},
		"active":  false,
	}, &resp, http.StatusCreated)
	return resp.ID
}

func checkStream() {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis url: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()
	n, err := rdb.XLen(context.Background(), "qotd.deliveries").Result()
	if err != nil {
		log.Fatalf("redis xlen: %v", err)
	}
	log.Printf("delivery stream holds %d events", n)
}

func doReq(method, path, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
