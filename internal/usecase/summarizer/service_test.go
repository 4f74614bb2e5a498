package summarizer

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

type fakeTranscriber struct {
	transcript string
	err        error
	configured bool
	calls      int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	f.calls++
	return f.transcript, f.err
}

func (f *fakeTranscriber) Configured() bool { return f.configured }

type fakeCompleter struct {
	response   string
	err        error
	configured bool
	calls      int
	lastPrompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeCompleter) Configured() bool { return f.configured }

type fakeRepo struct {
	inserts  int
	inserted *entities.MeetingRecord
	err      error
}

func (f *fakeRepo) Insert(ctx context.Context, record *entities.MeetingRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserts++
	record.ID = uuid.New()
	f.inserted = record
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	return nil, stderrors.New("not implemented")
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit, offset int) ([]*entities.MeetingListItem, error) {
	return nil, nil
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			AcceptedTypes: []string{"audio/wav", "audio/mpeg"},
			MaxBytes:      1 << 20,
		},
	}
}

func newTestService(tr *fakeTranscriber, cm *fakeCompleter, repo *fakeRepo) *Service {
	return NewService(tr, cm, nil, repo, testConfig(), nil)
}

func validUpload() *entities.Upload {
	return &entities.Upload{
		Filename:    "standup.wav",
		ContentType: "audio/wav",
		Data:        []byte("fake audio bytes"),
	}
}

func assertErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr apperrors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s got %s", code.String(), appErr.Code.String())
	}
}

func TestProcess_EmptyUploadRejectedBeforeCollaborators(t *testing.T) {
	tr := &fakeTranscriber{configured: true}
	cm := &fakeCompleter{configured: true}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	_, err := svc.Process(context.Background(), &entities.Upload{
		Filename:    "empty.wav",
		ContentType: "audio/wav",
		Data:        nil,
	})
	if err == nil {
		t.Fatal("expected error for empty upload")
	}
	assertErrorCode(t, err, apperrors.ErrorCode_INVALID_INPUT)

	if tr.calls != 0 || cm.calls != 0 {
		t.Fatalf("collaborators must not be called for invalid input: transcriber=%d completer=%d", tr.calls, cm.calls)
	}
	if repo.inserts != 0 {
		t.Fatalf("no insert expected, got %d", repo.inserts)
	}
}

func TestProcess_UnsupportedContentTypeRejected(t *testing.T) {
	tr := &fakeTranscriber{configured: true}
	cm := &fakeCompleter{configured: true}
	svc := newTestService(tr, cm, &fakeRepo{})

	upload := validUpload()
	upload.ContentType = "video/mp4"

	_, err := svc.Process(context.Background(), upload)
	assertErrorCode(t, err, apperrors.ErrorCode_INVALID_INPUT)
	if tr.calls != 0 {
		t.Fatalf("transcriber must not be called, got %d calls", tr.calls)
	}
}

func TestProcess_OversizedUploadRejected(t *testing.T) {
	tr := &fakeTranscriber{configured: true}
	cm := &fakeCompleter{configured: true}
	svc := newTestService(tr, cm, &fakeRepo{})

	upload := validUpload()
	upload.Data = make([]byte, (1<<20)+1)

	_, err := svc.Process(context.Background(), upload)
	assertErrorCode(t, err, apperrors.ErrorCode_INVALID_INPUT)
}

func TestProcess_UnconfiguredCollaborator(t *testing.T) {
	tr := &fakeTranscriber{configured: false}
	cm := &fakeCompleter{configured: true}
	svc := newTestService(tr, cm, &fakeRepo{})

	_, err := svc.Process(context.Background(), validUpload())
	assertErrorCode(t, err, apperrors.ErrorCode_SERVICE_NOT_CONFIGURED)
	if tr.calls != 0 {
		t.Fatalf("unconfigured transcriber must not be called")
	}
}

func TestProcess_TranscriptionFailureSkipsInsert(t *testing.T) {
	tr := &fakeTranscriber{configured: true, err: stderrors.New("upstream 500")}
	cm := &fakeCompleter{configured: true}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	_, err := svc.Process(context.Background(), validUpload())
	assertErrorCode(t, err, apperrors.ErrorCode_TRANSCRIPTION_FAILED)

	if cm.calls != 0 {
		t.Fatalf("completer must not run after transcription failure")
	}
	if repo.inserts != 0 {
		t.Fatalf("no insert expected after failure, got %d", repo.inserts)
	}
}

func TestProcess_SummarizationFailureSkipsInsert(t *testing.T) {
	tr := &fakeTranscriber{configured: true, transcript: "hello world"}
	cm := &fakeCompleter{configured: true, err: stderrors.New("rate limited")}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	_, err := svc.Process(context.Background(), validUpload())
	assertErrorCode(t, err, apperrors.ErrorCode_SUMMARIZATION_FAILED)
	if repo.inserts != 0 {
		t.Fatalf("no insert expected after failure, got %d", repo.inserts)
	}
}

func TestProcess_SuccessInsertsExactlyOnce(t *testing.T) {
	tr := &fakeTranscriber{configured: true, transcript: "we agreed to ship friday"}
	cm := &fakeCompleter{
		configured: true,
		response:   "TITLE: Ship Review\nSUMMARY: agreed to ship\nDECISIONS:\n- ship Friday\nACTIONS:\n- Tag release - Bob - Friday",
	}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	record, err := svc.Process(context.Background(), validUpload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", repo.inserts)
	}
	if record.Title != "Ship Review" {
		t.Fatalf("unexpected title %q", record.Title)
	}
	if record.Transcript != "we agreed to ship friday" {
		t.Fatalf("unexpected transcript %q", record.Transcript)
	}
	if record.RawNotes != cm.response {
		t.Fatalf("raw notes must retain the full model output")
	}
	if len(record.Decisions) != 1 || len(record.Actions) != 1 {
		t.Fatalf("unexpected lists %v / %v", record.Decisions, record.Actions)
	}
	if cm.lastPrompt == "" {
		t.Fatal("completer must receive a prompt built from the transcript")
	}
}

func TestProcess_MalformedModelOutputStillPersists(t *testing.T) {
	tr := &fakeTranscriber{configured: true, transcript: "rambling with no structure"}
	cm := &fakeCompleter{configured: true, response: "sorry, I cannot format that"}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	record, err := svc.Process(context.Background(), validUpload())
	if err != nil {
		t.Fatalf("parsing must never fail the pipeline: %v", err)
	}
	if record.Title != entities.DefaultTitle {
		t.Fatalf("expected default title got %q", record.Title)
	}
	if record.RawNotes != cm.response {
		t.Fatalf("raw notes must retain the full model output")
	}
	if repo.inserts != 1 {
		t.Fatalf("expected one insert, got %d", repo.inserts)
	}
}

func TestProcess_StorageFailureReported(t *testing.T) {
	tr := &fakeTranscriber{configured: true, transcript: "hello"}
	cm := &fakeCompleter{configured: true, response: "TITLE: Hello"}
	repo := &fakeRepo{err: stderrors.New("connection refused")}
	svc := newTestService(tr, cm, repo)

	_, err := svc.Process(context.Background(), validUpload())
	assertErrorCode(t, err, apperrors.ErrorCode_STORAGE_FAILED)
}

func TestProcess_CanceledRequestDiscardsResults(t *testing.T) {
	tr := &fakeTranscriber{configured: true, transcript: "hello"}
	cm := &fakeCompleter{configured: true, response: "TITLE: Hello"}
	repo := &fakeRepo{}
	svc := newTestService(tr, cm, repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, validUpload())
	if err == nil {
		t.Fatal("expected error for canceled request")
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("canceled run must not persist, got %d inserts", repo.inserts)
	}
}
