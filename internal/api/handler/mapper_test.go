package handler

import (
	"encoding/json"
	"testing"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

func TestToUserListResponse_ResourceCountOnlyInList(t *testing.T) {
	u := &domain.User{ID: "u1", Email: "a@cadmin.io", Name: "A", Role: domain.RoleUser, Active: true}

	single, err := json.Marshal(userResponse{User: u})
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	var one map[string]map[string]any
	if err := json.Unmarshal(single, &one); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if _, ok := one["user"]["resourceCount"]; ok {
		t.Fatalf("single user response carries resourceCount: %s", single)
	}

	list, err := json.Marshal(toUserListResponse(&ports.ListUsersResult{Users: []*domain.User{u}, Total: 1, Page: 1, Limit: 20, TotalPages: 1}))
	if err != nil {
		t.Fatalf("marshal list: %v", err)
	}
	var many struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(list, &many); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(many.Users) != 1 {
		t.Fatalf("expected one user, got %d", len(many.Users))
	}
	if got, ok := many.Users[0]["resourceCount"]; !ok || got != float64(0) {
		t.Fatalf("list entry resourceCount = %v (present %v); want 0", got, ok)
	}
	if many.Users[0]["email"] != "a@cadmin.io" {
		t.Fatalf("list entry lost embedded fields: %v", many.Users[0])
	}
}

func TestToUserListResponse_EmptyIsArray(t *testing.T) {
	b, err := json.Marshal(toUserListResponse(&ports.ListUsersResult{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if users, ok := out["users"].([]any); !ok || len(users) != 0 {
		t.Fatalf("users = %v; want []", out["users"])
	}
}
