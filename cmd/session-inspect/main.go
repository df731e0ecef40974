// session-inspect prints the session record a context would hydrate from,
// which is handy when debugging why two contexts disagree about login state.
//
// Usage:
//
//	session-inspect -file ~/.config/app/session.json
//	session-inspect -redis-addr localhost:6379 -key client_session_status
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	authsession "github.com/renovault/authsession"
	"github.com/renovault/authsession/storage"
)

func main() {
	var (
		file      = flag.String("file", "", "path of a file-backed session record")
		redisAddr = flag.String("redis-addr", "", "redis address of a redis-backed session record")
		key       = flag.String("key", storage.DefaultKey, "session record key")
	)
	flag.Parse()

	var store storage.Store
	switch {
	case *file != "":
		store = storage.NewFile(*file)
	case *redisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer client.Close()
		store = storage.NewRedis(client, *key)
	default:
		fmt.Fprintln(os.Stderr, "one of -file or -redis-addr is required")
		os.Exit(2)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, ok, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("no session record stored")
		return
	}

	var record authsession.SessionStatusInfo
	if err := json.Unmarshal(payload, &record); err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}

	fmt.Printf("logged in:  %v\n", record.LoggedIn)
	if record.CurrentUser != "" {
		fmt.Printf("user:       %s\n", record.CurrentUser)
	}
	if record.FullName != "" {
		fmt.Printf("full name:  %s\n", record.FullName)
	}
	if record.Lang != "" {
		fmt.Printf("language:   %s\n", record.Lang)
	}
	if record.Timestamp > 0 {
		checked := time.Unix(int64(record.Timestamp), 0)
		fmt.Printf("checked at: %s (%s ago)\n", checked.Format(time.RFC3339), time.Since(checked).Round(time.Second))
	}
	if record.SessionExpired != nil && *record.SessionExpired {
		fmt.Println("marked expired, awaiting re-login")
	}
	if record.Token != "" {
		fmt.Println("token:      present")
	}
	if len(record.Extra) > 0 {
		extra, _ := json.MarshalIndent(record.Extra, "", "  ")
		fmt.Printf("extra:      %s\n", extra)
	}
}
