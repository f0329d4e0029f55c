package photo

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestStatic(t *testing.T) {
	s := Static{BaseURL: "https://cdn.example/photos/"}
	ctx := context.Background()
	if got := s.PhotoURL(ctx, "alice.jpg"); got != "https://cdn.example/photos/alice.jpg" {
		t.Error("Unexpected url " + got)
	}
	if got := s.PhotoURL(ctx, "https://drive.example/x"); got != "https://drive.example/x" {
		t.Error("Absolute urls are passed through")
	}
	if got := s.PhotoURL(ctx, ""); got != "" {
		t.Error("A missing photo stays empty")
	}
	if got := (Static{}).PhotoURL(ctx, "alice.jpg"); got != "alice.jpg" {
		t.Error("Without a base url keys are passed through")
	}
}

func TestR2Signer(t *testing.T) {
	ctx := context.Background()
	if _, err := NewR2Signer(ctx, R2Parameters{}); err == nil {
		t.Error("Expected missing account and bucket to be rejected")
	}

	signer, err := NewR2Signer(ctx, R2Parameters{
		AccountID:       "acc123",
		AccessKeyID:     "AKIDEXAMPLE",
		AccessKeySecret: "secret",
		Bucket:          "killer-photos",
		URLTTL:          10 * time.Minute,
	})
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(1700000000, 0)
	signer.now = func() time.Time { return now }

	url := signer.PhotoURL(ctx, "alice_pieds.jpg")
	if !strings.HasPrefix(url, "https://acc123.r2.cloudflarestorage.com/killer-photos/alice_pieds.jpg?") {
		t.Fatal("Unexpected signed url " + url)
	}
	if !strings.Contains(url, "X-Amz-Signature=") || !strings.Contains(url, "X-Amz-Expires=600") {
		t.Error("Expected a presigned url valid for 10 minutes: " + url)
	}

	if again := signer.PhotoURL(ctx, "alice_pieds.jpg"); again != url {
		t.Error("Expected the cached url to be reused")
	}
	now = now.Add(6 * time.Minute)
	if len(signer.cache) != 1 {
		t.Error("Expected one cached url")
	}
	signer.PhotoURL(ctx, "alice_pieds.jpg")
	if !signer.cache["alice_pieds.jpg"].expires.After(now) {
		t.Error("Expected the url to be signed again past half its lifetime")
	}
	if got := signer.PhotoURL(ctx, "https://drive.example/x"); got != "https://drive.example/x" {
		t.Error("Absolute urls are passed through")
	}
}
