package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/validation"
)

/*
* Representa o livro na camada web, por isso ele tem as tags json
 */
type bookRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Author   string `json:"author" validate:"required,max=255"`
	Genre    string `json:"genre" validate:"required,max=100"`
	CoverURL string `json:"cover_url,omitempty" validate:"omitempty,url"`
}

type markReadRequest struct {
	Rating *int `json:"rating" validate:"required"`
}

/*
* Representa o livro na camada web
 */
type bookResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	CoverURL string `json:"cover_url,omitempty"`
	IsRead   bool   `json:"is_read"`
	Rating   int    `json:"rating"`
	UserID   int64  `json:"user_id"`
}

func toBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Genre:    b.Genre,
		CoverURL: b.CoverURL,
		IsRead:   b.IsRead,
		Rating:   int(b.Rating),
		UserID:   b.UserID,
	}
}

// toBookResponses never returns nil, so empty lists encode as []
func toBookResponses(books []book.Book) []bookResponse {
	result := make([]bookResponse, 0, len(books))
	for _, b := range books {
		result = append(result, toBookResponse(b))
	}
	return result
}

func getBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponses(all))
	})
}

func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		b, err := bookService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponse(b))
	})
}

func getUserBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		books, err := bookService.ListForUser(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponses(books))
	})
}

func getUserReadBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		books, err := bookService.ListReadForUser(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponses(books))
	})
}

func postUserBook(bookService book.UseCase, v *validation.Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			writeError(w, r, fmt.Errorf("%w: decoding body: %v", book.ErrValidation, err))
			return
		}
		if err := v.Validate(br); err != nil {
			writeError(w, r, err)
			return
		}
		b, err := bookService.Create(r.Context(), userID, br.Title, br.Author, br.Genre, br.CoverURL)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toBookResponse(b))
	})
}

// putMarkRead takes the rating from a JSON body, or from ?rating= when the body is empty
func putMarkRead(bookService book.UseCase, v *validation.Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var mr markReadRequest
		err = json.NewDecoder(r.Body).Decode(&mr)
		switch {
		case errors.Is(err, io.EOF):
			if q := r.URL.Query().Get("rating"); q != "" {
				rating, err := strconv.Atoi(q)
				if err != nil {
					writeError(w, r, fmt.Errorf("%w: rating must be an integer", book.ErrValidation))
					return
				}
				mr.Rating = &rating
			}
		case err != nil:
			writeError(w, r, fmt.Errorf("%w: decoding body: %v", book.ErrValidation, err))
			return
		}
		if err := v.Validate(mr); err != nil {
			writeError(w, r, err)
			return
		}

		b, err := bookService.MarkRead(r.Context(), id, book.Rating(*mr.Rating))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponse(b))
	})
}
