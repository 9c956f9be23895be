package chi

import (
	"net/http"

	"github.com/marcelsud/bookshelf/recommend"
)

type statsResponse struct {
	User          userResponse   `json:"user"`
	TotalBooks    int            `json:"total_books"`
	FavoriteGenre *string        `json:"favorite_genre"`
	GenreCounts   map[string]int `json:"genre_counts"`
	Books         []bookResponse `json:"books"`
}

type recommendationResponse struct {
	RecommendedGenre string         `json:"recommended_genre"`
	Reason           string         `json:"reason"`
	SuggestedBooks   []bookResponse `json:"suggested_books"`
}

func getStats(recommender recommend.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		stats, err := recommender.Stats(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := statsResponse{
			User:        toUserResponse(stats.User),
			TotalBooks:  stats.TotalBooks,
			GenreCounts: stats.GenreCounts,
			Books:       toBookResponses(stats.Books),
		}
		// null when nothing was read
		if stats.FavoriteGenre != "" {
			resp.FavoriteGenre = &stats.FavoriteGenre
		}
		if resp.GenreCounts == nil {
			resp.GenreCounts = map[string]int{}
		}
		writeJSON(w, r, http.StatusOK, resp)
	})
}

func getRecommendations(recommender recommend.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		rec, err := recommender.Recommend(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, recommendationResponse{
			RecommendedGenre: rec.Genre,
			Reason:           rec.Reason,
			SuggestedBooks:   toBookResponses(rec.Suggested),
		})
	})
}
