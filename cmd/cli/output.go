package main

import (
	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/recommend"
)

type userOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	CoverURL string `json:"cover_url,omitempty"`
	IsRead   bool   `json:"is_read"`
	Rating   int    `json:"rating"`
	UserID   int64  `json:"user_id"`
}

type statsOutput struct {
	User          userOutput     `json:"user"`
	TotalBooks    int            `json:"total_books"`
	FavoriteGenre string         `json:"favorite_genre,omitempty"`
	GenreCounts   map[string]int `json:"genre_counts"`
}

type recommendationOutput struct {
	Genre     string       `json:"genre"`
	Reason    string       `json:"reason"`
	Suggested []bookOutput `json:"suggested"`
}

func toUserOutput(u user.User) userOutput {
	return userOutput{ID: u.ID, Name: u.Name}
}

func toUserOutputs(all []user.User) []userOutput {
	out := make([]userOutput, 0, len(all))
	for _, u := range all {
		out = append(out, toUserOutput(u))
	}
	return out
}

func toBookOutput(b book.Book) bookOutput {
	return bookOutput{
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

func toBookOutputs(all []book.Book) []bookOutput {
	out := make([]bookOutput, 0, len(all))
	for _, b := range all {
		out = append(out, toBookOutput(b))
	}
	return out
}

func toStatsOutput(s recommend.UserStats) statsOutput {
	counts := s.GenreCounts
	if counts == nil {
		counts = map[string]int{}
	}
	return statsOutput{
		User:          toUserOutput(s.User),
		TotalBooks:    s.TotalBooks,
		FavoriteGenre: s.FavoriteGenre,
		GenreCounts:   counts,
	}
}

func toRecommendationOutput(r recommend.Recommendation) recommendationOutput {
	return recommendationOutput{
		Genre:     r.Genre,
		Reason:    r.Reason,
		Suggested: toBookOutputs(r.Suggested),
	}
}
