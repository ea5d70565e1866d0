package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/repository"
)

type fakeAttachmentStore struct {
	failOn  int // 1-based upload ordinal to fail, 0 = never
	uploads int
}

func (f *fakeAttachmentStore) Upload(ctx context.Context, key string, file io.Reader) (string, error) {
	f.uploads++
	if f.failOn != 0 && f.uploads == f.failOn {
		return "", errors.New("blob storage unavailable")
	}
	return "https://cdn.example.com/" + key, nil
}

type fakeSubmissionRepo struct {
	inserts int
	last    *model.PromptSubmission
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *model.PromptSubmission) (string, error) {
	f.inserts++
	sub.ID = fmt.Sprintf("sub_%d", f.inserts)
	f.last = sub
	return sub.ID, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*model.PromptSubmission, error) {
	if f.last != nil && f.last.ID == id {
		return f.last, nil
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) GetByTraineeID(ctx context.Context, traineeID string) ([]*model.PromptSubmission, error) {
	if f.last != nil && f.last.TraineeID == traineeID {
		return []*model.PromptSubmission{f.last}, nil
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) SetEvaluation(ctx context.Context, id string, status model.SubmissionStatus, feedback string) error {
	if f.last == nil || f.last.ID != id {
		return nil
	}
	if f.last.Status != model.SubmissionPending {
		return repository.ErrAlreadyEvaluated
	}
	f.last.Status = status
	f.last.Feedback = &feedback
	return nil
}

func newTestSubmissionService(store *fakeAttachmentStore, repo *fakeSubmissionRepo) *SubmissionService {
	return NewSubmissionService(repo, store, logger.NewNop())
}

func validRequest(files ...FileUpload) *SubmitRequest {
	return &SubmitRequest{
		TraineeID:     "trainee_1",
		SubmitterName: "Ada",
		PromptText:    "Explain the substitution ratio for baking soda.",
		Attachments:   files,
	}
}

func file(name string, size int64) FileUpload {
	return FileUpload{Name: name, Size: size, Content: strings.NewReader("data")}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		req  *SubmitRequest
	}{
		{"empty name", &SubmitRequest{SubmitterName: "   ", PromptText: "p"}},
		{"empty prompt", &SubmitRequest{SubmitterName: "Ada", PromptText: " \n "}},
		{"too many files", validRequest(
			file("1", 1), file("2", 1), file("3", 1), file("4", 1), file("5", 1), file("6", 1),
		)},
		{"oversized file", validRequest(file("big.pdf", MaxAttachmentSize+1))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := &fakeAttachmentStore{}
			repo := &fakeSubmissionRepo{}
			svc := newTestSubmissionService(store, repo)

			_, err := svc.Submit(context.Background(), c.req)
			if !IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if store.uploads != 0 {
				t.Error("validation failure must not trigger uploads")
			}
			if repo.inserts != 0 {
				t.Error("validation failure must not create a record")
			}
		})
	}
}

func TestSubmit_UploadAtomicity(t *testing.T) {
	// Second of three uploads fails: no record, and the error is an upload
	// failure, not a validation one.
	store := &fakeAttachmentStore{failOn: 2}
	repo := &fakeSubmissionRepo{}
	svc := newTestSubmissionService(store, repo)

	_, err := svc.Submit(context.Background(), validRequest(
		file("a.txt", 10), file("b.txt", 10), file("c.txt", 10),
	))

	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UploadError", err)
	}
	if IsValidation(err) {
		t.Error("upload failure must not look like a validation failure")
	}
	if ue.FileName != "b.txt" {
		t.Errorf("failed file = %q, want b.txt", ue.FileName)
	}
	if repo.inserts != 0 {
		t.Errorf("inserts = %d, want 0", repo.inserts)
	}
}

func TestSubmit_Success(t *testing.T) {
	store := &fakeAttachmentStore{}
	repo := &fakeSubmissionRepo{}
	svc := newTestSubmissionService(store, repo)

	sub, err := svc.Submit(context.Background(), validRequest(
		file("notes.txt", 10), file("rubric draft.pdf", 10),
	))
	if err != nil {
		t.Fatal(err)
	}

	if repo.inserts != 1 {
		t.Errorf("inserts = %d, want exactly 1", repo.inserts)
	}
	if sub.Status != model.SubmissionPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}
	if sub.Feedback != nil {
		t.Error("new submission must have nil feedback")
	}
	if sub.SubmissionType != "prompt" {
		t.Errorf("submission type = %q, want prompt", sub.SubmissionType)
	}
	if len(sub.AttachmentURLs) != 2 {
		t.Fatalf("attachment urls = %d, want 2", len(sub.AttachmentURLs))
	}
	for _, u := range sub.AttachmentURLs {
		if !strings.HasPrefix(u, "https://cdn.example.com/submissions/") {
			t.Errorf("unexpected attachment url %q", u)
		}
		if strings.Contains(u, " ") {
			t.Errorf("attachment key not sanitized: %q", u)
		}
	}
}

func TestSubmit_NoAttachments(t *testing.T) {
	store := &fakeAttachmentStore{}
	repo := &fakeSubmissionRepo{}
	svc := newTestSubmissionService(store, repo)

	sub, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if sub.AttachmentURLs == nil || len(sub.AttachmentURLs) != 0 {
		t.Errorf("attachment urls = %#v, want empty non-nil slice", sub.AttachmentURLs)
	}
}

func TestGet_OwnershipEnforced(t *testing.T) {
	store := &fakeAttachmentStore{}
	repo := &fakeSubmissionRepo{}
	svc := newTestSubmissionService(store, repo)

	sub, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(context.Background(), "trainee_1", sub.ID)
	if err != nil || got == nil {
		t.Fatalf("owner lookup failed: %v %v", got, err)
	}
	got, err = svc.Get(context.Background(), "trainee_2", sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("foreign trainee must not see the submission")
	}
}
