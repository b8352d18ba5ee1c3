package memes

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

const memeCols = "id, title, created, modified"

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func memeRow(id uuid.UUID, title string, ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "created", "modified"}).
		AddRow(id.String(), title, ts, ts)
}

func TestPGRepoInsertReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO meme_center.memes").
		WithArgs("t1").
		WillReturnRows(memeRow(id, "t1", now))

	m, err := repo.Insert(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if m.ID != id || m.Title != "t1" {
		t.Fatalf("unexpected row: %+v", m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT " + memeCols).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created", "modified"}))

	_, err := repo.GetByID(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoClassifiesConnectionRefused(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT " + memeCols).
		WithArgs(id).
		WillReturnError(syscall.ECONNREFUSED)

	_, err := repo.GetByID(context.Background(), id)
	if !errors.Is(err, ErrStoreConnection) {
		t.Fatalf("expected ErrStoreConnection, got %v", err)
	}
}

func TestPGRepoClassifiesUnknown(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT " + memeCols).
		WithArgs(id).
		WillReturnError(errors.New("syntax error"))

	_, err := repo.GetByID(context.Background(), id)
	if !errors.Is(err, ErrStoreUnknown) {
		t.Fatalf("expected ErrStoreUnknown, got %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("UPDATE meme_center.memes").
		WithArgs(id, "new title").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created", "modified"}))

	_, err := repo.Update(context.Background(), id, "new title")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE meme_center.memes").
		WithArgs(id, "new title").
		WillReturnRows(memeRow(id, "new title", now))

	m, err := repo.Update(context.Background(), id, "new title")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if m.Title != "new title" {
		t.Fatalf("unexpected title: %q", m.Title)
	}
}

func TestPGRepoDeleteReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("DELETE FROM meme_center.memes").
		WithArgs(id).
		WillReturnRows(memeRow(id, "t1", now))

	m, err := repo.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.ID != id {
		t.Fatalf("unexpected id: %s", m.ID)
	}
}

func TestPGRepoListPassesLimitOffset(t *testing.T) {
	repo, mock := newMockRepo(t)
	id1, id2 := uuid.New(), uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "title", "created", "modified"}).
		AddRow(id1.String(), "a", now, now).
		AddRow(id2.String(), "b", now.Add(time.Second), now.Add(time.Second))

	mock.ExpectQuery("SELECT " + memeCols).
		WithArgs(2, 4).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[0].ID != id1 || out[1].ID != id2 {
		t.Fatalf("unexpected page: %+v", out)
	}
}
