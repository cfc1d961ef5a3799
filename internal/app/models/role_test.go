package models

import "testing"

func TestUserRole(t *testing.T) {
	tests := []struct {
		name string
		user User
		want Role
	}{
		{"no flags", User{}, RoleGuest},
		{"admin only", User{IsAdmin: true}, RoleSiteOwner},
		{"site mod only", User{IsSiteMod: true}, RoleSiteMod},
		{"site mod overrides admin", User{IsAdmin: true, IsSiteMod: true}, RoleSiteMod},
		{"moderator", User{OperatorID: "abc"}, RoleMod},
		{"moderator overrides site flags", User{IsAdmin: true, IsSiteMod: true, OperatorID: "abc"}, RoleMod},
		{"operator", User{OperatorID: "abc", AssignedBy: "xyz"}, RoleOp},
		{"operator overrides moderator path", User{IsAdmin: true, OperatorID: "abc", AssignedBy: "xyz"}, RoleOp},
		{"supporter", User{IsSupporter: true}, RoleSupporter},
		{"gold", User{IsGold: true}, RoleSupporter},
		{"gold overrides admin", User{IsAdmin: true, IsGold: true}, RoleSupporter},
		{"supporter overrides operator", User{OperatorID: "abc", AssignedBy: "xyz", IsSupporter: true}, RoleSupporter},
		{"assignedBy without operator_id is guest", User{AssignedBy: "xyz"}, RoleGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Role(); got != tt.want {
				t.Errorf("Role() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestUserRoleTotal exercises every combination of the six boolean/relational
// predicates and checks that resolution is total, deterministic, and lands on
// a defined Role value.
func TestUserRoleTotal(t *testing.T) {
	for i := 0; i < 64; i++ {
		u := User{
			IsAdmin:     i&1 != 0,
			IsSiteMod:   i&2 != 0,
			IsSupporter: i&16 != 0,
			IsGold:      i&32 != 0,
		}
		if i&4 != 0 {
			u.OperatorID = "op"
		}
		if i&8 != 0 {
			u.AssignedBy = "assigner"
		}

		got := u.Role()
		if got < RoleGuest || got > RoleSupporter {
			t.Fatalf("combination %#b: Role() = %d, out of range", i, got)
		}
		if again := u.Role(); again != got {
			t.Fatalf("combination %#b: Role() not deterministic: %v then %v", i, got, again)
		}

		// The final cascade rule always wins.
		if (u.IsSupporter || u.IsGold) && got != RoleSupporter {
			t.Errorf("combination %#b: supporter/gold set but Role() = %v", i, got)
		}
	}
}

func TestUserModeratorOperatorPredicates(t *testing.T) {
	tests := []struct {
		name       string
		operatorID string
		assignedBy string
		wantMod    bool
		wantOp     bool
	}{
		{"neither", "", "", false, false},
		{"operator id only", "abc", "", true, false},
		{"both", "abc", "xyz", false, true},
		{"assigned only", "", "xyz", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{OperatorID: tt.operatorID, AssignedBy: tt.assignedBy}
			if got := u.IsModerator(); got != tt.wantMod {
				t.Errorf("IsModerator() = %v, want %v", got, tt.wantMod)
			}
			if got := u.IsOperator(); got != tt.wantOp {
				t.Errorf("IsOperator() = %v, want %v", got, tt.wantOp)
			}
		})
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleGuest, "guest"},
		{RoleSiteOwner, "site_owner"},
		{RoleSiteMod, "site_mod"},
		{RoleMod, "mod"},
		{RoleOp, "op"},
		{RoleSupporter, "supporter"},
		{Role(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name string
		r    Role
		min  Role
		want bool
	}{
		{"guest below mod", RoleGuest, RoleMod, false},
		{"mod meets mod", RoleMod, RoleMod, true},
		{"op above mod", RoleOp, RoleMod, true},
		{"supporter outranks everything in cascade order", RoleSupporter, RoleOp, true},
		{"site owner below mod in cascade order", RoleSiteOwner, RoleMod, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.AtLeast(tt.min); got != tt.want {
				t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.r, tt.min, got, tt.want)
			}
		})
	}
}
