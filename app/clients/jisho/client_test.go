package jisho

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleResponse = `{
	"meta": {"status": 200},
	"data": [
		{
			"slug": "食べる",
			"is_common": true,
			"tags": ["wanikani5"],
			"jlpt": ["jlpt-n5"],
			"japanese": [
				{"word": "食べる", "reading": "たべる"},
				{"word": "喰べる", "reading": "たべる"}
			],
			"senses": [
				{
					"english_definitions": ["to eat"],
					"parts_of_speech": ["Ichidan verb", "Transitive verb"],
					"tags": []
				},
				{
					"english_definitions": ["to live on (e.g. a salary)", "to live off", "to subsist on"],
					"parts_of_speech": ["Ichidan verb", "Transitive verb"],
					"tags": []
				}
			]
		},
		{
			"slug": "broken",
			"japanese": "not-a-list"
		},
		{
			"slug": "no-senses",
			"japanese": [{"reading": "たべる"}]
		}
	]
}`

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestSearch(t *testing.T) {
	validURL := "https://jisho.org/api/v1/search/words?keyword=taberu"
	word := "taberu"
	newClient := func(rt RoundTripFunc) Client {
		return Client{
			baseURL:   DefaultBaseURL,
			userAgent: "jisho-cli/test",
			client:    &http.Client{Transport: rt},
			context:   context.TODO(),
		}
	}

	t.Run("success", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, validURL, req.URL.String())
			assert.Equal(t, "jisho-cli/test", req.Header.Get("User-Agent"))
			assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
			return okResponse(exampleResponse), nil
		})
		result, err := client.Search(word)
		require.NoError(t, err)
		expected := SearchResult{
			Entries: []Entry{
				{
					Forms: []Form{
						{Word: "食べる", Reading: "たべる"},
						{Word: "喰べる", Reading: "たべる"},
					},
					IsCommon: true,
					JLPT:     []string{"jlpt-n5"},
					Senses: []Sense{
						{
							EnglishGlosses: []string{"to eat"},
							PartsOfSpeech:  []string{"Ichidan verb", "Transitive verb"},
							Tags:           []string{},
						},
						{
							EnglishGlosses: []string{"to live on (e.g. a salary)", "to live off", "to subsist on"},
							PartsOfSpeech:  []string{"Ichidan verb", "Transitive verb"},
							Tags:           []string{},
						},
					},
				},
				{
					Forms: []Form{{Reading: "たべる"}},
				},
			},
			Skipped: 1,
		}
		assert.Equal(t, expected, result)
		assert.Nil(t, result.Entries[1].Senses)
	})
	t.Run("escaped query", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "https://jisho.org/api/v1/search/words?keyword=to+eat", req.URL.String())
			return okResponse(`{"data": []}`), nil
		})
		result, err := client.Search("to eat")
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.Skipped)
	})
	t.Run("reqest error", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, validURL, req.URL.String())
			return &http.Response{}, http.ErrServerClosed
		})
		result, err := client.Search(word)
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Nil(t, result.Entries)
	})
	t.Run("invalid JSON", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			return okResponse("Invalid JSON"), nil
		})
		result, err := client.Search(word)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidResponse)
		assert.Nil(t, result.Entries)
	})
	t.Run("error status", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			resp := okResponse(`{"meta": {"status": 500}}`)
			resp.StatusCode = 500
			return resp, nil
		})
		result, err := client.Search(word)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidResponse)
		assert.Nil(t, result.Entries)
	})
	t.Run("invalid shape", func(t *testing.T) {
		for name, body := range map[string]string{
			"data is a string": `{"data": "not-an-array"}`,
			"data is null":     `{"data": null}`,
			"missing data":     `{"meta": {"status": 200}}`,
			"top level array":  `[1, 2, 3]`,
		} {
			body := body
			t.Run(name, func(t *testing.T) {
				client := newClient(func(req *http.Request) (*http.Response, error) {
					return okResponse(body), nil
				})
				result, err := client.Search(word)
				assert.ErrorIs(t, err, ErrInvalidResponse)
				assert.Nil(t, result.Entries)
			})
		}
	})
}

func TestNewClient(t *testing.T) {
	t.Run("default base URL", func(t *testing.T) {
		client := NewClient(context.TODO(), "", "")
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, http.DefaultClient, client.client)
	})
	t.Run("custom base URL", func(t *testing.T) {
		client := NewClient(context.TODO(), "http://localhost:8080/api/", "ua")
		assert.Equal(t, "http://localhost:8080/api/", client.baseURL)
		assert.Equal(t, "ua", client.userAgent)
	})
}
