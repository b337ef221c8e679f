package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleUploader Role = "UPLOADER"
	RoleAnalyst  Role = "ANALYST"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }
func (p Principal) IsUploader() bool { return p.Role == RoleUploader }
func (p Principal) IsAnalyst() bool  { return p.Role == RoleAnalyst }

// CanIngest reports whether the principal may load files into the store.
func (p Principal) CanIngest() bool { return p.IsAdmin() || p.IsUploader() }
