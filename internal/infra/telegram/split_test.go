package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voicenote-bot/internal/domain"
)

func TestSplitMessage_Short(t *testing.T) {
	parts := splitMessage("hello", maxMessageLen)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Errorf("got %v, want [hello]", parts)
	}
}

func TestSplitMessage_LongIsLossless(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("sentence number one two three four five.\n")
	}
	text := b.String()

	parts := splitMessage(text, maxMessageLen)
	if len(parts) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(parts))
	}

	for i, part := range parts {
		if n := len([]rune(part)); n > maxMessageLen {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, maxMessageLen)
		}
	}

	if strings.Join(parts, "") != text {
		t.Error("concatenated chunks do not reproduce the original text")
	}
}

func TestSplitMessage_PrefersNewlineBoundary(t *testing.T) {
	text := strings.Repeat("a", 90) + "\n" + strings.Repeat("b", 90)

	parts := splitMessage(text, 100)
	if len(parts) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(parts), parts)
	}
	if !strings.HasSuffix(parts[0], "\n") {
		t.Errorf("first chunk should end at the newline, got %q", parts[0])
	}
}

func TestSplitMessage_NoBoundary(t *testing.T) {
	text := strings.Repeat("x", 250)

	parts := splitMessage(text, 100)
	if len(parts) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(parts))
	}
	if strings.Join(parts, "") != text {
		t.Error("concatenated chunks do not reproduce the original text")
	}
}

func TestNewRequest_Voice(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 10,
		Chat:      &tgbotapi.Chat{ID: 42},
		Voice:     &tgbotapi.Voice{FileID: "voice-1", FileSize: 2048},
	}

	req := newRequest(msg)

	if req.Kind != domain.KindVoice {
		t.Errorf("Kind: got %s, want voice", req.Kind)
	}
	if req.FileID != "voice-1" {
		t.Errorf("FileID: got %s", req.FileID)
	}
	if req.FileName != "voice.ogg" {
		t.Errorf("FileName: got %s", req.FileName)
	}
	if req.FileSize != 2048 {
		t.Errorf("FileSize: got %d", req.FileSize)
	}
	if req.ChatID != 42 || req.ReplyTo != 10 {
		t.Errorf("chat routing: got chat=%d reply=%d", req.ChatID, req.ReplyTo)
	}
	if req.ID == "" {
		t.Error("request ID should be set")
	}
}

func TestNewRequest_Audio(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 11,
		Chat:      &tgbotapi.Chat{ID: 42},
		Audio:     &tgbotapi.Audio{FileID: "audio-1", FileName: "note.m4a", FileSize: 4096},
	}

	req := newRequest(msg)

	if req.Kind != domain.KindAudio {
		t.Errorf("Kind: got %s, want audio", req.Kind)
	}
	if req.FileName != "note.m4a" {
		t.Errorf("FileName: got %s", req.FileName)
	}
	if audioExt(req) != ".m4a" {
		t.Errorf("ext: got %s, want .m4a", audioExt(req))
	}
}

func TestAudioExt_Fallback(t *testing.T) {
	req := &domain.TranscriptionRequest{FileName: "noextension"}
	if ext := audioExt(req); ext != ".ogg" {
		t.Errorf("ext: got %s, want .ogg", ext)
	}
}
