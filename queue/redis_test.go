package queue

import "testing"

func TestDecodeEmailJob(t *testing.T) {
	job, err := decodeEmailJob(map[string]any{
		"kind":  KindConfirmationEmail,
		"email": "alice@x.com",
		"token": "tok-123",
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if job.Email != "alice@x.com" || job.Token != "tok-123" {
		t.Errorf("unexpected job: %+v", job)
	}
}

func TestDecodeEmailJobUnknownKind(t *testing.T) {
	if _, err := decodeEmailJob(map[string]any{"kind": "resize_image"}); err == nil {
		t.Error("expected error for unknown kind, got nil")
	}
}

func TestDecodeEmailJobMissingEmail(t *testing.T) {
	if _, err := decodeEmailJob(map[string]any{"kind": KindConfirmationEmail}); err == nil {
		t.Error("expected error for missing email, got nil")
	}
}
