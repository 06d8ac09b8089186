package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tominotrumpets/internal/models"
)

func TestCreateGenre(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO genres (description) VALUES ($1) RETURNING id`)).
		WithArgs("Jazz").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	got, err := s.CreateGenre(context.Background(), models.Genre{Description: "Jazz"})
	if err != nil {
		t.Fatalf("CreateGenre error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("expected id 3, got %d", got.ID)
	}
}

func TestUpdateGenreLooksUpPathID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE genres`)).
		WithArgs("Blues", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description"}).AddRow(int64(2), "Blues"))

	got, err := s.UpdateGenre(context.Background(), 2, models.Genre{ID: 2000, Description: "Blues"})
	if err != nil {
		t.Fatalf("UpdateGenre error: %v", err)
	}
	if got.ID != 2 || got.Description != "Blues" {
		t.Fatalf("unexpected genre: %#v", got)
	}
}

func TestGetGenreDetail(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM genres`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description"}).AddRow(int64(1), "American Rock"))
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN songs s ON s.id = sg.song_id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(songColumns).AddRow(int64(1), "Born in the U.S.A.", int64(1), "Born in the U.S.A.", 437))

	got, err := s.GetGenreDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetGenreDetail error: %v", err)
	}
	if got.Description != "American Rock" || len(got.Songs) != 1 {
		t.Fatalf("unexpected detail: %#v", got)
	}
}

func TestGetGenreDetailNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM genres`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description"}))

	if _, err := s.GetGenreDetail(context.Background(), 5); !errors.Is(err, ErrGenreNotFound) {
		t.Fatalf("expected ErrGenreNotFound, got %v", err)
	}
}

func TestDeleteGenreGuardsMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteGenre(context.Background(), 5, models.DeleteOrphan); !errors.Is(err, ErrGenreNotFound) {
		t.Fatalf("expected ErrGenreNotFound, got %v", err)
	}
}

func TestDeleteGenreCascade(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`WHERE genre_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteGenre(context.Background(), 1, models.DeleteCascade); err != nil {
		t.Fatalf("DeleteGenre error: %v", err)
	}
}

func TestDeleteGenreRestrict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM genres WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM song_genres WHERE genre_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	if err := s.DeleteGenre(context.Background(), 1, models.DeleteRestrict); err != nil {
		t.Fatalf("DeleteGenre error: %v", err)
	}
}
