package generation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/generation"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/httpx"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/pkg/imgutil"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(32, 32, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	data, err := imgutil.EncodeJPEG(img, 85)
	require.NoError(t, err)
	return data
}

func generateContentReply(imageData []byte) string {
	return fmt.Sprintf(`{
		"candidates": [{
			"content": {
				"parts": [
					{"text": "here is the image"},
					{"inlineData": {"data": %q, "mimeType": "image/jpeg"}}
				]
			}
		}]
	}`, imgutil.ToBase64(imageData))
}

func testRequest(t *testing.T, images int) generation.Request {
	t.Helper()
	req := generation.Request{
		ModelID:     "test-image-model",
		Temperature: 0.05,
		Prompt:      "render the scene",
	}
	for i := 0; i < images; i++ {
		req.Images = append(req.Images, generation.ReferenceImage{
			Data:  testImageBytes(t),
			Label: fmt.Sprintf("ref-%d", i),
		})
	}
	return req
}

func TestInvoke_ImageCountEnforcedBeforeNetworkIO(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	for _, count := range []int{0, 1, 4} {
		_, err := invoker.Invoke(context.Background(), testRequest(t, count))
		assert.ErrorIs(t, err, generation.ErrImageCount, "count=%d", count)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "invalid calls must not reach the network")
}

func TestInvoke_Success(t *testing.T) {
	generated := testImageBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "test-image-model:generateContent")
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		contents := payload["contents"].([]interface{})
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		// Prompt text plus a label and blob per reference image.
		assert.Len(t, parts, 1+2*2)

		fmt.Fprint(w, generateContentReply(generated))
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	result, err := invoker.Invoke(context.Background(), testRequest(t, 2))
	require.NoError(t, err)
	assert.Equal(t, generated, result.Data)
	assert.Equal(t, "image/jpeg", result.MimeType)
	assert.Equal(t, "test-image-model", result.ModelID)
}

func TestInvoke_RetriesServerErrorOnce(t *testing.T) {
	generated := testImageBytes(t)
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, generateContentReply(generated))
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	result, err := invoker.Invoke(context.Background(), testRequest(t, 3))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvoke_PersistentServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	_, err := invoker.Invoke(context.Background(), testRequest(t, 2))
	assert.ErrorIs(t, err, httpx.ErrUnavailable)
}

func TestInvoke_ContentRejectionNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "content policy"}}`)
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	_, err := invoker.Invoke(context.Background(), testRequest(t, 2))
	require.Error(t, err)
	assert.NotErrorIs(t, err, httpx.ErrUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInvoke_ResponseWithoutImageFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": [{"content": {"parts": [{"text": "no image today"}]}}]}`)
	}))
	defer server.Close()

	invoker := generation.NewInvoker(generation.Options{
		BaseURL: server.URL, APIKey: "k", HTTPClient: server.Client(), Logger: testLogger(),
	})

	_, err := invoker.Invoke(context.Background(), testRequest(t, 2))
	assert.ErrorContains(t, err, "no image")
}
