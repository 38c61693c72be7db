// Package session persists the credential pair the client keeps across
// restarts: the opaque token and the tenant it was minted for. Nothing else
// about the authenticated user survives a reload.
package session

// Session is the persisted credential pair.
type Session struct {
	Token    string `json:"token"`
	TenantID string `json:"tenantId"`
}

// Store is the durable key-value persistence collaborator. GetUser returns
// (nil, nil) when no session is stored. Writes are last-write-wins.
type Store interface {
	GetUser() (*Session, error)
	SetToken(token, tenantID string) error
	ClearToken() error
}
