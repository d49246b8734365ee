package domain

import "testing"

func TestIdentityClaim_CanActOn(t *testing.T) {
	owner := IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: RoleUser}
	admin := IdentityClaim{SubjectID: "u9", IDHash: "h9", Username: "root", Role: RoleAdmin}
	other := IdentityClaim{SubjectID: "u2", IDHash: "h2", Username: "bob", Role: RoleUser}

	if !owner.CanActOn("h1") {
		t.Fatalf("owner should be able to act on own resource")
	}
	if !admin.CanActOn("h1") {
		t.Fatalf("admin should be able to act on any resource")
	}
	if other.CanActOn("h1") {
		t.Fatalf("non-owner non-admin must be forbidden")
	}

	// An empty caller hash must never match an empty owner hash.
	anon := IdentityClaim{SubjectID: "u3", Role: RoleUser}
	if anon.CanActOn("") {
		t.Fatalf("empty id hash must not grant ownership")
	}
}

func TestIdentityClaim_CanActOnSubject(t *testing.T) {
	owner := IdentityClaim{SubjectID: "u1", Role: RoleUser}
	admin := IdentityClaim{SubjectID: "u9", Role: RoleAdmin}
	other := IdentityClaim{SubjectID: "u2", Role: RoleUser}

	if !owner.CanActOnSubject("u1") || !admin.CanActOnSubject("u1") {
		t.Fatalf("owner and admin must be allowed")
	}
	if other.CanActOnSubject("u1") {
		t.Fatalf("non-owner non-admin must be forbidden")
	}
}

func TestIdentityClaim_Valid(t *testing.T) {
	if (IdentityClaim{}).Valid() {
		t.Fatalf("zero claim must be invalid")
	}
	if !(IdentityClaim{SubjectID: "u1", Role: RoleUser}).Valid() {
		t.Fatalf("claim with subject and role must be valid")
	}
}
