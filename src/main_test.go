package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/wordgrid/internal/wordsource"
	"crosswarped.com/wordgrid/pkg/dict"
)

func testServer(t *testing.T) *server {
	t.Helper()
	words, err := wordsource.LoadFile(t.Context(), "../testdata/words.txt", wordsource.Options{})
	require.NoError(t, err)
	b, err := wordsource.NewBuilder(words)
	require.NoError(t, err)
	b.CollapseSuffixes()
	d, err := dict.Build(b)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "words.bin.gz")
	_, err = wordsource.SaveDictionary(path, d)
	require.NoError(t, err)
	t.Setenv("DICTIONARY_PATH", path)

	s := newServer(zerolog.Nop())
	s.scopeWords = func(ctx context.Context, scope string, includeObscure bool) ([]string, []string, error) {
		if scope != "animals" {
			return nil, nil, errors.New("unknown scope")
		}
		var obscure []string
		if includeObscure {
			obscure = []string{"GNU"}
		}
		return []string{"Cat", "dog"}, obscure, nil
	}
	return s
}

func post(t *testing.T, s *server, body string) (int, FindWordsResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/find-words", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.findWords(rec, req)

	var resp FindWordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func TestFindWordsDefaultDictionary(t *testing.T) {
	s := testServer(t)

	code, resp := post(t, s, `{"grid": "ABCD/EFGH/IJKL/MNOP", "minLength": 5}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"knife", "plonk"}, resp.Words)
	assert.Equal(t, 6, resp.MaxScore)
	assert.Empty(t, resp.Error)

	_, resp = post(t, s, `{"grid": "ABCDEFGHIJKLMNOP"}`)
	assert.Len(t, resp.Words, 16)
	assert.Equal(t, 26, resp.MaxScore)
}

func TestFindWordsRequestWords(t *testing.T) {
	s := testServer(t)

	_, resp := post(t, s, `{"grid": "DOG/CAN/XTU", "words": ["TAC", "god"], "minLength": 3}`)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"god", "tac"}, resp.Words)

	_, resp = post(t, s, `{"grid": "DOG/CAN/XTU", "wordScope": "animals"}`)
	assert.Equal(t, []string{"cat", "dog"}, resp.Words)

	_, resp = post(t, s, `{"grid": "DOG/CAN/XTU", "wordScope": "animals", "includeObscure": true}`)
	assert.Equal(t, []string{"cat", "dog", "gnu"}, resp.Words)

	_, resp = post(t, s, `{"grid": "DOG/CAN/XTU", "wordScope": "plants"}`)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown scope")
}

func TestFindWordsErrors(t *testing.T) {
	s := testServer(t)

	for _, body := range []string{
		`{"grid": ""}`,
		`{"grid": "ABC/DE"}`,
		`{"grid": "ABCD", "minLength": -1}`,
		`{"grid": "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ"}`,
	} {
		code, resp := post(t, s, body)
		assert.Equal(t, http.StatusOK, code, body)
		assert.False(t, resp.Success, body)
		assert.NotEmpty(t, resp.Error, body)
		assert.Equal(t, []string{}, resp.Words, body)
	}

	code, resp := post(t, s, `{"grid": `)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "Invalid JSON")
}

func TestFindWordsNoDictionary(t *testing.T) {
	t.Setenv("DICTIONARY_PATH", "")
	s := newServer(zerolog.Nop())

	_, resp := post(t, s, `{"grid": "ABCD"}`)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "DICTIONARY_PATH")
}

func TestFindWordsMethods(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.findWords(rec, httptest.NewRequest(http.MethodOptions, "/find-words", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	s.findWords(rec, httptest.NewRequest(http.MethodGet, "/find-words", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method GET not allowed")
}
