package domain

type AttachmentKind string

const (
	KindVoice AttachmentKind = "voice"
	KindAudio AttachmentKind = "audio"
)

// MaxAttachmentSize is the default ceiling for inbound audio (25MB).
const MaxAttachmentSize = 25 << 20

// TranscriptionRequest tracks one inbound audio message through the
// pipeline. It lives for the duration of a single message handling and
// is mutated in place as each stage completes.
type TranscriptionRequest struct {
	ID       string
	ChatID   int64
	ReplyTo  int
	Kind     AttachmentKind
	FileID   string
	FileName string
	FileSize int64

	AudioPath  string
	Transcript string
	Improved   string
	Summary    string
}
