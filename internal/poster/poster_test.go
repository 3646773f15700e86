package poster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fullCreds() Credentials {
	return Credentials{
		APIKey:       "key",
		APISecret:    "secret",
		AccessToken:  "token",
		AccessSecret: "token-secret",
	}
}

func TestValidateListsAllMissing(t *testing.T) {
	err := Credentials{}.Validate()
	if err == nil {
		t.Fatal("expected an error for empty credentials")
	}
	for _, name := range []string{
		"TWITTER_API_KEY",
		"TWITTER_API_SECRET",
		"TWITTER_ACCESS_TOKEN",
		"TWITTER_ACCESS_TOKEN_SECRET",
	} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestValidateListsOnlyMissing(t *testing.T) {
	creds := fullCreds()
	creds.AccessToken = ""
	err := creds.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "TWITTER_ACCESS_TOKEN") {
		t.Errorf("error %q does not name the missing secret", err)
	}
	if strings.Contains(err.Error(), "TWITTER_API_KEY,") || strings.HasSuffix(err.Error(), "TWITTER_API_KEY") {
		t.Errorf("error %q names a present secret", err)
	}
}

func TestValidateComplete(t *testing.T) {
	if err := fullCreds().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPostMissingCredentialsNeverCallsNetwork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network call made despite missing credentials")
	}))
	defer ts.Close()

	c := NewClient(Credentials{}, time.Second)
	c.UploadURL = ts.URL
	c.TweetURL = ts.URL

	if err := c.Post(context.Background(), "hello", ""); err == nil {
		t.Error("expected a configuration error")
	}
}

func TestPostTextOnly(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "OAuth ") {
			t.Errorf("request not OAuth1 signed: %q", auth)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer ts.Close()

	c := NewClient(fullCreds(), time.Second)
	c.TweetURL = ts.URL

	if err := c.Post(context.Background(), "hello world", ""); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotBody["text"] != "hello world" {
		t.Errorf("posted text = %v", gotBody["text"])
	}
	if _, hasMedia := gotBody["media"]; hasMedia {
		t.Error("text-only post carried a media block")
	}
}

func TestPostWithMedia(t *testing.T) {
	uploads := 0
	upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads++
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
		}
		if _, _, err := r.FormFile("media"); err != nil {
			t.Errorf("media part missing: %v", err)
		}
		w.Write([]byte(`{"media_id_string":"4242"}`))
	}))
	defer upload.Close()

	var gotBody map[string]interface{}
	tweet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer tweet.Close()

	mediaPath := filepath.Join(t.TempDir(), "card.jpg")
	if err := os.WriteFile(mediaPath, []byte("not a real jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewClient(fullCreds(), time.Second)
	c.UploadURL = upload.URL
	c.TweetURL = tweet.URL

	if err := c.Post(context.Background(), "with media", mediaPath); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if uploads != 1 {
		t.Errorf("uploads = %d, want 1", uploads)
	}
	media, ok := gotBody["media"].(map[string]interface{})
	if !ok {
		t.Fatalf("media block missing: %v", gotBody)
	}
	ids, ok := media["media_ids"].([]interface{})
	if !ok || len(ids) != 1 || ids[0] != "4242" {
		t.Errorf("media_ids = %v", media["media_ids"])
	}
}

func TestPostSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"duplicate content"}`))
	}))
	defer ts.Close()

	c := NewClient(fullCreds(), time.Second)
	c.TweetURL = ts.URL

	err := c.Post(context.Background(), "dup", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q does not carry the status", err)
	}
}
