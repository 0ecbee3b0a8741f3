package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/raye/pagesmith/server/internal/api"
	"github.com/raye/pagesmith/server/internal/auth"
	"github.com/raye/pagesmith/server/internal/github"
	"github.com/raye/pagesmith/server/internal/store"
)

func main() {
	_ = godotenv.Load(".env")
	if os.Getenv("PAGESMITH_GITHUB_TOKEN") == "" {
		log.Print("[Pagesmith] PAGESMITH_GITHUB_TOKEN not set; organizations must POST /connect before publishing")
	}

	st := store.NewStore()
	opts := github.CommitOptions{StrictBlobs: os.Getenv("PAGESMITH_STRICT_BLOBS") == "1"}
	handler := api.NewHandler(st, opts)

	var mw func(http.Handler) http.Handler
	if user, pass := os.Getenv("PAGESMITH_AUTH_USER"), os.Getenv("PAGESMITH_AUTH_PASS"); user != "" && pass != "" {
		mw = auth.BasicAuth(user, pass)
	} else {
		mw = auth.ExtractOrg("default")
	}
	router := api.NewRouter(handler, mw)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	log.Printf("Pagesmith publisher listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
