package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/internal/validation"
)

type userRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

func getUsers(userService user.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := userService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]userResponse, 0, len(all))
		for _, u := range all {
			result = append(result, toUserResponse(u))
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func getUser(userService user.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		u, err := userService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toUserResponse(u))
	})
}

func postUser(userService user.UseCase, v *validation.Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ur userRequest
		if err := json.NewDecoder(r.Body).Decode(&ur); err != nil {
			writeError(w, r, fmt.Errorf("%w: decoding body: %v", user.ErrValidation, err))
			return
		}
		if err := v.Validate(ur); err != nil {
			writeError(w, r, err)
			return
		}
		u, err := userService.Create(r.Context(), ur.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toUserResponse(u))
	})
}
