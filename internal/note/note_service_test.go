package note

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	noteerrors "metaedge-portal/internal/note/errors"
)

type fakeRepo struct {
	createFn           func(ctx context.Context, n *Note) error
	updateFn           func(ctx context.Context, n *Note) error
	deleteFn           func(ctx context.Context, id string) error
	findByIDAndOwnerFn func(ctx context.Context, id, employeeID string) (*Note, error)
	findAllByOwnerFn   func(ctx context.Context, employeeID string) ([]Note, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f }
func (f *fakeRepo) Create(ctx context.Context, n *Note) error { return f.createFn(ctx, n) }
func (f *fakeRepo) Update(ctx context.Context, n *Note) error { return f.updateFn(ctx, n) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) FindByIDAndOwner(ctx context.Context, id, employeeID string) (*Note, error) {
	return f.findByIDAndOwnerFn(ctx, id, employeeID)
}
func (f *fakeRepo) FindAllByOwner(ctx context.Context, employeeID string) ([]Note, error) {
	return f.findAllByOwnerFn(ctx, employeeID)
}

func TestService_Create_DefaultColor(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var saved Note
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, n *Note) error { saved = *n; return nil }

	svc := NewService(db, repo)
	owner := uuid.New().String()

	resp, err := svc.Create(context.Background(), owner, CreateNoteRequest{Title: "Ide konten Q4"})
	assert.NoError(t, err)
	assert.Equal(t, "yellow", resp.Color)
	assert.Equal(t, owner, saved.EmployeeID.String())
	assert.False(t, resp.IsPinned)

	resp, err = svc.Create(context.Background(), owner, CreateNoteRequest{Title: "Brief klien", Color: "blue"})
	assert.NoError(t, err)
	assert.Equal(t, "blue", resp.Color)
}

func TestService_TogglePin(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	noteID := uuid.New()
	owner := uuid.New()
	stored := &Note{ID: noteID, EmployeeID: owner, Title: "Checklist launch", Color: "green"}

	repo := &fakeRepo{}
	repo.findByIDAndOwnerFn = func(ctx context.Context, id, employeeID string) (*Note, error) {
		return stored, nil
	}
	repo.updateFn = func(ctx context.Context, n *Note) error { stored.IsPinned = n.IsPinned; return nil }

	svc := NewService(db, repo)

	resp, err := svc.TogglePin(context.Background(), owner.String(), noteID.String())
	assert.NoError(t, err)
	assert.True(t, resp.IsPinned)

	resp, err = svc.TogglePin(context.Background(), owner.String(), noteID.String())
	assert.NoError(t, err)
	assert.False(t, resp.IsPinned)
}

func TestService_CrossOwnerHidden(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDAndOwnerFn = func(ctx context.Context, id, employeeID string) (*Note, error) {
		// Repo memfilter by owner, jadi milik orang lain tidak pernah kembali.
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	stranger := uuid.New().String()
	ctx := context.Background()

	_, err := svc.Update(ctx, stranger, uuid.New().String(), UpdateNoteRequest{Title: "hijack"})
	assert.ErrorIs(t, err, noteerrors.ErrNoteNotFound)

	_, err = svc.TogglePin(ctx, stranger, uuid.New().String())
	assert.ErrorIs(t, err, noteerrors.ErrNoteNotFound)

	err = svc.Delete(ctx, stranger, uuid.New().String())
	assert.ErrorIs(t, err, noteerrors.ErrNoteNotFound)
}

func TestService_InvalidNoteID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.TogglePin(context.Background(), uuid.New().String(), "not-a-uuid")
	assert.ErrorIs(t, err, noteerrors.ErrInvalidNoteID)
}

func TestService_Update(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	noteID := uuid.New()
	owner := uuid.New()
	content := "draft lama"
	stored := &Note{ID: noteID, EmployeeID: owner, Title: "Moodboard", Content: &content, Color: "pink"}

	repo := &fakeRepo{}
	repo.findByIDAndOwnerFn = func(ctx context.Context, id, employeeID string) (*Note, error) {
		return stored, nil
	}
	repo.updateFn = func(ctx context.Context, n *Note) error { *stored = *n; return nil }

	svc := NewService(db, repo)

	newContent := "draft final"
	resp, err := svc.Update(context.Background(), owner.String(), noteID.String(), UpdateNoteRequest{
		Title:   "Moodboard v2",
		Content: &newContent,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Moodboard v2", resp.Title)
	// Warna kosong berarti tidak diubah.
	assert.Equal(t, "pink", resp.Color)
}
