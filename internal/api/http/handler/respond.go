package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maaylex/maaylex-server/internal/model"
)

// writeJSON renders v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type messageResponse struct {
	Message string `json:"message"`
}

// decodeJSON parses the request body into v. Unknown fields are rejected
// rather than silently dropped.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// identityAtLeast returns the caller's identity when it meets the minimum
// role. Missing identity and insufficient role are distinct outcomes.
func identityAtLeast(cm model.ContextManager, r *http.Request, min model.Role) (*model.User, error) {
	user, _ := cm.UserFromContext(r.Context())
	role := model.RoleOf(user)
	if role == model.RoleAnonymous && min > model.RoleAnonymous {
		return nil, model.ErrUnauthenticated
	}
	if !role.AtLeast(min) {
		return nil, model.ErrForbidden
	}
	return user, nil
}
