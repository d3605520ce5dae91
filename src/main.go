package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog"

	"crosswarped.com/wordgrid"
	"crosswarped.com/wordgrid/internal/logging"
	"crosswarped.com/wordgrid/internal/wordsource"
	"crosswarped.com/wordgrid/pkg/dict"
)

type FindWordsRequest struct {
	Grid           string   `json:"grid"`
	MinLength      int      `json:"minLength"`
	Words          []string `json:"words"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
}

type FindWordsResponse struct {
	Success  bool     `json:"success"`
	Words    []string `json:"words"`
	MaxScore int      `json:"maxScore"`
	Error    string   `json:"error,omitempty"`
}

var errNoDictionary = errors.New("no dictionary configured; set DICTIONARY_PATH or pass words or wordScope")

// scopeLoader returns the regular and obscure words of a scope.
type scopeLoader func(ctx context.Context, scope string, includeObscure bool) ([]string, []string, error)

type server struct {
	logger     zerolog.Logger
	dictionary func() (*dict.Dictionary, error)
	scopeWords scopeLoader
}

func newServer(logger zerolog.Logger) *server {
	s := &server{logger: logger}

	path := os.Getenv("DICTIONARY_PATH")
	s.dictionary = sync.OnceValues(func() (*dict.Dictionary, error) {
		if path == "" {
			return nil, errNoDictionary
		}
		start := time.Now()
		d, err := wordsource.LoadDictionary(path)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", path).Int("records", d.Len()).Dur("elapsed", time.Since(start)).Msg("loaded dictionary")
		return d, nil
	})

	bq := wordsource.BigQuery{
		Project:  "xword-x",
		Table:    "xword-x.FirestoreQuery.all_words",
		Location: "US",
	}
	if project := os.Getenv("BIGQUERY_PROJECT"); project != "" {
		bq.Project = project
	}
	if table := os.Getenv("BIGQUERY_TABLE"); table != "" {
		bq.Table = table
	}
	s.scopeWords = bq.Words
	return s
}

// wordsFor returns the dictionary to search: one built from the request's own
// words and scope if it names any, otherwise the configured default.
func (s *server) wordsFor(ctx context.Context, req FindWordsRequest) (*dict.Dictionary, error) {
	if len(req.Words) == 0 && req.WordScope == "" {
		return s.dictionary()
	}

	lists := [][]string{req.Words}
	if req.WordScope != "" {
		regular, obscure, err := s.scopeWords(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return nil, fmt.Errorf("getWords: %w", err)
		}
		s.logger.Info().
			Str("scope", req.WordScope).
			Int("regular", len(regular)).
			Int("obscure", len(obscure)).
			Msg("loaded scope words")
		lists = append(lists, regular, obscure)
	}
	for _, list := range lists {
		for i, word := range list {
			list[i] = strings.ToLower(strings.TrimSpace(word))
		}
	}

	b, err := wordsource.NewBuilder(lists...)
	if err != nil {
		return nil, err
	}
	if b.NumWords() == 0 {
		return nil, fmt.Errorf("no words to search for")
	}
	b.CollapseSuffixes()
	return dict.Build(b)
}

func (s *server) execute(ctx context.Context, req FindWordsRequest) ([]string, error) {
	if req.Grid == "" {
		return nil, fmt.Errorf("grid must not be empty")
	}
	if req.MinLength < 0 {
		return nil, fmt.Errorf("minLength must not be negative")
	}
	if req.MinLength == 0 {
		req.MinLength = wordgrid.DefaultMinLength
	}

	grid, err := wordgrid.ParseGrid(req.Grid)
	if err != nil {
		return nil, err
	}
	d, err := s.wordsFor(ctx, req)
	if err != nil {
		return nil, err
	}

	finder := wordgrid.NewFinder(d, wordgrid.WithMinLength(req.MinLength))
	return finder.FindWords(grid)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *server) findWords(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req FindWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn().Err(err).Msg("invalid JSON body")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(FindWordsResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	start := time.Now()
	words, err := s.execute(r.Context(), req)

	response := FindWordsResponse{
		Success:  err == nil,
		Words:    words,
		MaxScore: wordgrid.Score(words),
	}
	if response.Words == nil {
		response.Words = []string{}
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("grid", req.Grid).Msg("find words failed")
		response.Error = err.Error()
	} else {
		s.logger.Info().
			Str("grid", req.Grid).
			Int("words", len(words)).
			Int("maxScore", response.MaxScore).
			Dur("elapsed", time.Since(start)).
			Msg("found words")
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error().Err(err).Msg("encoding response failed")
	}
}

func main() {
	logger := logging.New(logging.ConfigFromEnv())
	funcframework.RegisterHTTPFunction("/find-words", newServer(logger).findWords)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	logger.Info().Str("host", hostname).Str("port", port).Msg("starting")
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		logger.Fatal().Err(err).Msg("funcframework.StartHostPort")
	}
}
