package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/usecase"
)

func registerHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			respondError(r.Context(), w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		out, err := uc.Auth.Register(r.Context(), &usecase.RegisterInput{
			CompanyName: req.Name,
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
		})
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"token":       out.Token,
			"tenantHash":  out.TenantHash,
			"message":     "Account created successfully",
			"redirectUrl": "/t/" + out.TenantHash + "/dashboard",
		})
	}
}

func loginHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`

		// Optional; scopes the login to one tenant when the user belongs
		// to several
		TenantHash string `json:"tenantHash"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			respondError(r.Context(), w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		out, err := uc.Auth.Login(r.Context(), req.Email, req.Password, req.TenantHash)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"token":       out.Token,
			"tenantHash":  out.TenantHash,
			"redirectUrl": "/t/" + out.TenantHash + "/dashboard",
		})
	}
}
